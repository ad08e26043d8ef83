package reconcile

// Role is the semantic part a message plays during reconciliation. The
// five roles are constant across eras; only the raw codes that express
// them differ.
type Role int

const (
	RoleUnknown Role = iota
	RoleTrade
	RoleCorrection
	RoleCancellation
	RoleCorrectionCancellation
	RoleReversal
)

// Raw status codes by era. Post-cutover reports carry the full
// five-code vocabulary on trc_st; pre-cutover reports use three codes
// and mark reversals on the as-of code instead.
const (
	codeTrade = "T"

	codePostCorrection = "R"
	codePostCancel     = "X"
	codePostCorrCancel = "C"
	codePostReversal   = "Y"

	codePreCorrection = "W"
	codePreCancel     = "C"

	// asOfReversal is the as-of code value that flags a pre-cutover
	// message as a reversal.
	asOfReversal = "R"
)

// Side and counterparty codes as reported.
const (
	sideBuy  = "B"
	sideSell = "S"

	counterpartyCustomer = "C"
	counterpartyDealer   = "D"

	whenIssuedYes = "Y"
)

// maxSettlementDays bounds both the reported and the derived
// settlement window in the validity filter.
const maxSettlementDays = 7

func postRole(statusCode string) Role {
	switch statusCode {
	case codeTrade:
		return RoleTrade
	case codePostCorrection:
		return RoleCorrection
	case codePostCancel:
		return RoleCancellation
	case codePostCorrCancel:
		return RoleCorrectionCancellation
	case codePostReversal:
		return RoleReversal
	default:
		return RoleUnknown
	}
}

func preRole(statusCode string) Role {
	switch statusCode {
	case codeTrade:
		return RoleTrade
	case codePreCorrection:
		return RoleCorrection
	case codePreCancel:
		return RoleCancellation
	default:
		return RoleUnknown
	}
}
