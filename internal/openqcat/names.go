// Package openqcat maps OPENQCAT catalog documents to course records and back.
//
// Document shapes handled:
//
//	<OPENQCAT>
//	  <HEADER>...</HEADER>
//	  <NEW_CATALOG><SERVICE>...</SERVICE>...</NEW_CATALOG>
//	</OPENQCAT>
//
//	<OPENQCAT version="1.1">
//	  <HEADER>...</HEADER>
//	  <UPDATE_CATALOG seq_number="11">
//	    <DELETE><SERVICE><PRODUCT_ID>123</PRODUCT_ID></SERVICE></DELETE>
//	    <NEW><SERVICE mode="new">...</SERVICE></NEW>
//	  </UPDATE_CATALOG>
//	</OPENQCAT>
package openqcat

const (
	elemRoot          = "OPENQCAT"
	elemHeader        = "HEADER"
	elemNewCatalog    = "NEW_CATALOG"
	elemUpdateCatalog = "UPDATE_CATALOG"
	elemNew           = "NEW"
	elemDelete        = "DELETE"
	elemService       = "SERVICE"
	elemProductID     = "PRODUCT_ID"

	attrVersion   = "version"
	attrSeqNumber = "seq_number"
	attrMode      = "mode"

	// Version written on every update document.
	Version = "1.1"
	// ModeNew tags every delivered record for update semantics.
	ModeNew = "new"
)

// ListElements are always sequences, even with a single occurrence.
var ListElements = []string{
	"SERVICE",
	"KEYWORD",
	"MIME_ELEMENT",
	"SUPPLIER",
	"TARGET_GROUP",
	"FEATURE",
	"CONTACT",
	"SERVICE_CLASSIFICATION",
	"VARIANT",
	"FVALUE",
}

var listElementSet = func() map[string]bool {
	m := make(map[string]bool, len(ListElements))
	for _, n := range ListElements {
		m[n] = true
	}
	return m
}()

// IsListElement reports whether name is configured as a repeating element.
func IsListElement(name string) bool {
	return listElementSet[name]
}
