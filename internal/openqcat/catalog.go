package openqcat

import (
	"strconv"
	"strings"

	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/errors"
	"kursnet-xml-tool/internal/xmldoc"
)

// Shape names the course list a catalog was loaded from.
type Shape string

const (
	ShapeNewCatalog    Shape = "new-catalog"
	ShapeUpdateCatalog Shape = "update-catalog"
)

// Catalog is a parsed document with its course records.
type Catalog struct {
	Root    *xmldoc.Node
	Header  *xmldoc.Node
	Shape   Shape
	Records []*domain.CourseRecord
}

// ParseCatalog runs the legacy fix-up, parses the text and extracts the records.
func ParseCatalog(text string) (*Catalog, error) {
	root, err := xmldoc.ParseString(FixLegacyAttributes(text))
	if err != nil {
		return nil, err
	}
	records, shape, err := ToRecords(root)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Root:    root,
		Header:  root.Child(elemHeader),
		Shape:   shape,
		Records: records,
	}, nil
}

// ToRecords locates the course list under NEW_CATALOG or UPDATE_CATALOG/NEW.
// The records share nodes with root.
func ToRecords(root *xmldoc.Node) ([]*domain.CourseRecord, Shape, error) {
	if root == nil || root.Name != elemRoot {
		name := ""
		if root != nil {
			name = root.Name
		}
		return nil, "", &errors.SchemaShapeError{Root: name}
	}

	var (
		services []*xmldoc.Node
		shape    Shape
	)
	if list := root.Find(elemNewCatalog).ChildrenNamed(elemService); len(list) > 0 {
		services, shape = list, ShapeNewCatalog
	} else if list := root.Find(elemUpdateCatalog, elemNew).ChildrenNamed(elemService); len(list) > 0 {
		services, shape = list, ShapeUpdateCatalog
	} else {
		return nil, "", &errors.SchemaShapeError{Root: root.Name}
	}

	records := make([]*domain.CourseRecord, 0, len(services))
	for _, s := range services {
		records = append(records, domain.NewCourseRecord(s))
	}
	return records, shape, nil
}

// FromRecords builds an update document: header passthrough, an optional
// DELETE list of bare ids and an optional NEW list of full records tagged
// mode="new". Records are copied; the inputs are not modified.
func FromRecords(records []*domain.CourseRecord, header *xmldoc.Node, seqNumber int, deletedIDs []string) *xmldoc.Node {
	root := &xmldoc.Node{Name: elemRoot, Attrs: []xmldoc.Attr{{Name: attrVersion, Value: Version}}}
	if header != nil {
		root.Append(header.Clone())
	}

	update := root.Append(&xmldoc.Node{
		Name:  elemUpdateCatalog,
		Attrs: []xmldoc.Attr{{Name: attrSeqNumber, Value: strconv.Itoa(seqNumber)}},
	})

	if len(deletedIDs) > 0 {
		del := update.Append(&xmldoc.Node{Name: elemDelete})
		for _, id := range deletedIDs {
			svc := del.Append(&xmldoc.Node{Name: elemService})
			svc.Append(xmldoc.NewNode(elemProductID, id))
		}
	}

	if len(records) > 0 {
		nw := update.Append(&xmldoc.Node{Name: elemNew})
		for _, r := range records {
			svc := r.Node().Clone()
			svc.SetAttr(attrMode, ModeNew)
			nw.Append(svc)
		}
	}
	return root
}

// Declaration is forced on every rendered document.
const Declaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// Render builds the text of root, repeats the legacy fix-up and prefixes the
// UTF-8 declaration.
func Render(root *xmldoc.Node) []byte {
	text := FixLegacyAttributes(xmldoc.Build(root))
	return []byte(Declaration + "\n" + text)
}

// DiffFileName is the conventional name of a differential delivery.
func DiffFileName(seqNumber int) string {
	return "differenz_seq_" + strconv.Itoa(seqNumber) + ".xml"
}

// Map projects a record into nested maps with list elements as sequences.
func Map(r *domain.CourseRecord) map[string]any {
	return xmldoc.ToMap(r.Node(), IsListElement)
}

// SeqNumber returns the seq_number of an update catalog, or 0.
func SeqNumber(root *xmldoc.Node) int {
	v, ok := root.Find(elemUpdateCatalog).Attr(attrSeqNumber)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}
