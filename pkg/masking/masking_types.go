package masking

// Strategy is how one kind of value is hidden in log output
type Strategy string

const (
	StrategyPartial Strategy = "partial" // keep a few leading and trailing runes
	StrategyDigest  Strategy = "digest"  // short SHA-256 prefix, stable across runs
	StrategyRedact  Strategy = "redact"
	StrategyNone    Strategy = "none"
)

// FieldType is the kind of personal data a value carries
type FieldType string

const (
	FieldEmail   FieldType = "email"
	FieldName    FieldType = "name"
	FieldUser    FieldType = "user"
	FieldCompany FieldType = "company"
)

// DigestLength is the number of hex characters kept by StrategyDigest.
const DigestLength = 12

// Policy maps field types to strategies
type Policy struct {
	Fallback   Strategy
	Strategies map[FieldType]Strategy
	KeepFirst  int
	KeepLast   int
	MaskRune   rune
}

// SanitizedPolicy is applied to log fields when exports are processed in
// sanitized mode: owner ids become stable digests so lines from one file
// can still be correlated, e-mails are partially hidden and names removed.
func SanitizedPolicy() Policy {
	return Policy{
		Fallback: StrategyRedact,
		Strategies: map[FieldType]Strategy{
			FieldEmail:   StrategyPartial,
			FieldName:    StrategyRedact,
			FieldUser:    StrategyDigest,
			FieldCompany: StrategyNone,
		},
		KeepFirst: 2,
		KeepLast:  4,
		MaskRune:  '*',
	}
}
