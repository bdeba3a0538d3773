package auth

// AccountKind tags the two account types a token can represent.
type AccountKind string

const (
	AccountCompany    AccountKind = "company"
	AccountIndividual AccountKind = "individual"
)

// Claims is the decoded payload of a verified token. It is a closed
// variant: guards type-switch on the concrete type instead of probing
// string fields.
type Claims interface {
	Kind() AccountKind
}

// CompanyClaims identifies a company account by its handle.
type CompanyClaims struct {
	Handle string
}

func (CompanyClaims) Kind() AccountKind { return AccountCompany }

// IndividualClaims identifies an individual account.
type IndividualClaims struct {
	ID       uint
	Username string
}

func (IndividualClaims) Kind() AccountKind { return AccountIndividual }
