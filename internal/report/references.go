package report

// References backs the formulas used in the calculation.
var References = []string{
	"Mosteller RD. Simplified calculation of body-surface area. N Engl J Med. 1987;317(17):1098.",
	"Holliday MA, Segar WE. The maintenance need for water in parenteral fluid therapy. Pediatrics. 1957;19(5):823-832.",
	"Oh W. Fluid and electrolyte management of very low birth weight infants. Pediatr Neonatol. 2012;53(6):329-333.",
	"Fleming S, Thompson M, Stevens R, et al. Normal ranges of heart rate and respiratory rate in children. Lancet. 2011;377(9770):1011-1018.",
}

// Disclaimer is printed after every text report.
const Disclaimer = "This estimate supports, but does not replace, clinical judgement. " +
	"Verify results against the patient's measured fluid balance before prescribing."
