package mib

// ObjectFlat is the simplified projection of a resolved object handed to
// downstream consumers (snippet builders, manifest diagnostics).
// Only objects with a resolved OID are projected.
type ObjectFlat struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Index       string `json:"index,omitempty" yaml:"index,omitempty"`
	MaxAccess   string `json:"maxAccess,omitempty" yaml:"maxAccess,omitempty"`
	ObjectType  string `json:"objectType" yaml:"objectType"`
	Status      string `json:"status,omitempty" yaml:"status,omitempty"`
	Syntax      string `json:"syntax,omitempty" yaml:"syntax,omitempty"`
	OID         string `json:"oid" yaml:"oid"`
	Source      string `json:"source" yaml:"source"`
}

// Flatten projects a resolved object into its consumer-facing record.
// The source value identifies the bundled base module or user file the
// object came from.
func Flatten(o *Object, source string) ObjectFlat {
	return ObjectFlat{
		Description: o.Description,
		Index:       o.Index,
		MaxAccess:   o.MaxAccess,
		ObjectType:  o.Name,
		Status:      o.Status,
		Syntax:      o.Syntax,
		OID:         o.OID,
		Source:      source,
	}
}
