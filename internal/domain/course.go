package domain

import (
	"strings"

	"kursnet-xml-tool/internal/xmldoc"
)

// Element and attribute names of a SERVICE entry the engine interprets.
const (
	ElemProductID       = "PRODUCT_ID"
	ElemSupplierAltPID  = "SUPPLIER_ALT_PID"
	ElemServiceDetails  = "SERVICE_DETAILS"
	ElemTitle           = "TITLE"
	ElemDescriptionLong = "DESCRIPTION_LONG"
	ElemServiceDate     = "SERVICE_DATE"
	ElemStartDate       = "START_DATE"
	ElemEndDate         = "END_DATE"
	ElemDateRemarks     = "DATE_REMARKS"
	ElemServiceModule   = "SERVICE_MODULE"
	ElemEducation       = "EDUCATION"
	ElemCourseID        = "COURSE_ID"
	ElemModuleCourse    = "MODULE_COURSE"
	ElemFlexibleStart   = "FLEXIBLE_START"

	AttrEducationType = "type"
)

var serviceDateOrder = []string{ElemStartDate, ElemEndDate, ElemDateRemarks}

// CourseRecord is one SERVICE entry of a catalog. The element tree is the
// record: fields the engine does not interpret stay in it untouched, and the
// accessors below read and write the few it does.
type CourseRecord struct {
	node *xmldoc.Node
}

// NewCourseRecord wraps a SERVICE element. A nil node yields an empty SERVICE.
func NewCourseRecord(n *xmldoc.Node) *CourseRecord {
	if n == nil {
		n = &xmldoc.Node{Name: "SERVICE"}
	}
	return &CourseRecord{node: n}
}

// Node exposes the underlying element.
func (r *CourseRecord) Node() *xmldoc.Node { return r.node }

// Clone returns a deep copy.
func (r *CourseRecord) Clone() *CourseRecord {
	return &CourseRecord{node: r.node.Clone()}
}

// Equal compares the raw trees.
func (r *CourseRecord) Equal(o *CourseRecord) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.node.Equal(o.node)
}

func (r *CourseRecord) ProductID() string {
	v, _ := r.node.ChildText(ElemProductID)
	return strings.TrimSpace(v)
}

func (r *CourseRecord) SetProductID(id string) {
	r.node.SetChildText(ElemProductID, id)
}

func (r *CourseRecord) SupplierAltPID() string {
	v, _ := r.node.ChildText(ElemSupplierAltPID)
	return v
}

func (r *CourseRecord) SetSupplierAltPID(id string) {
	r.node.SetChildText(ElemSupplierAltPID, id)
}

// Education returns SERVICE_DETAILS/SERVICE_MODULE/EDUCATION, or nil.
func (r *CourseRecord) Education() *xmldoc.Node {
	return r.node.Find(ElemServiceDetails, ElemServiceModule, ElemEducation)
}

// CourseReferenceID is the master record id of a scheduled instance.
// ok is false when the field is absent or blank.
func (r *CourseRecord) CourseReferenceID() (id string, ok bool) {
	v, _ := r.Education().ChildText(ElemCourseID)
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (r *CourseRecord) SetCourseReferenceID(id string) {
	r.EnsureModule()
	r.Education().SetChildText(ElemCourseID, id)
}

// ParentID returns the id of the record this one is an instance of, or ""
// for a parent. A reference to itself counts as no reference.
func (r *CourseRecord) ParentID() string {
	ref, ok := r.CourseReferenceID()
	if !ok || ref == r.ProductID() {
		return ""
	}
	return ref
}

// IsParent reports whether the record is a master record.
func (r *CourseRecord) IsParent() bool { return r.ParentID() == "" }

func (r *CourseRecord) Title() string {
	v, _ := r.node.Find(ElemServiceDetails).ChildText(ElemTitle)
	return v
}

func (r *CourseRecord) SetTitle(s string) {
	r.node.Ensure(ElemServiceDetails).SetChildText(ElemTitle, s)
}

func (r *CourseRecord) LongDescription() string {
	v, _ := r.node.Find(ElemServiceDetails).ChildText(ElemDescriptionLong)
	return v
}

func (r *CourseRecord) SetLongDescription(s string) {
	r.node.Ensure(ElemServiceDetails).SetChildText(ElemDescriptionLong, s)
}

// ServiceDate is the course date window. Nil fields are absent in the document.
type ServiceDate struct {
	StartDate   *string
	EndDate     *string
	DateRemarks *string
}

// ServiceDate returns the date window; all fields are nil when there is none.
func (r *CourseRecord) ServiceDate() ServiceDate {
	sd := r.node.Find(ElemServiceDetails, ElemServiceDate)
	return ServiceDate{
		StartDate:   optText(sd, ElemStartDate),
		EndDate:     optText(sd, ElemEndDate),
		DateRemarks: optText(sd, ElemDateRemarks),
	}
}

func optText(n *xmldoc.Node, name string) *string {
	v, ok := n.ChildText(name)
	if !ok {
		return nil
	}
	return &v
}

// HasServiceDate reports whether SERVICE_DETAILS/SERVICE_DATE exists.
func (r *CourseRecord) HasServiceDate() bool {
	return r.node.Find(ElemServiceDetails, ElemServiceDate) != nil
}

// StartDate returns the start date text, "" when absent.
func (r *CourseRecord) StartDate() string {
	if p := r.ServiceDate().StartDate; p != nil {
		return *p
	}
	return ""
}

func (r *CourseRecord) SetStartDate(s string)   { r.setDateField(ElemStartDate, s) }
func (r *CourseRecord) SetEndDate(s string)     { r.setDateField(ElemEndDate, s) }
func (r *CourseRecord) SetDateRemarks(s string) { r.setDateField(ElemDateRemarks, s) }

func (r *CourseRecord) setDateField(name, value string) {
	sd := r.node.EnsurePath(ElemServiceDetails, ElemServiceDate)
	sd.EnsureOrdered(name, serviceDateOrder).Text = value
}

// FlexibleStart reports continuous enrollment (FLEXIBLE_START is "true").
func (r *CourseRecord) FlexibleStart() bool {
	mc := r.Education().Child(ElemModuleCourse)
	v, _ := mc.ChildText(ElemFlexibleStart)
	return strings.TrimSpace(v) == "true"
}

func (r *CourseRecord) SetFlexibleStart(on bool) {
	v := "false"
	if on {
		v = "true"
	}
	r.EnsureModule().SetChildText(ElemFlexibleStart, v)
}

// EducationType returns the EDUCATION type attribute and whether it is present.
func (r *CourseRecord) EducationType() (string, bool) {
	return r.Education().Attr(AttrEducationType)
}

func (r *CourseRecord) SetEducationType(v string) {
	r.EnsureModule()
	r.Education().SetAttr(AttrEducationType, v)
}

// EnsureModule creates SERVICE_DETAILS/SERVICE_MODULE/EDUCATION/MODULE_COURSE
// as far as missing and returns MODULE_COURSE. A new EDUCATION starts with
// type="false". When several SERVICE_MODULE elements exist the first is used.
func (r *CourseRecord) EnsureModule() *xmldoc.Node {
	module := r.node.EnsurePath(ElemServiceDetails, ElemServiceModule)
	edu := module.Child(ElemEducation)
	if edu == nil {
		edu = module.Append(&xmldoc.Node{
			Name:  ElemEducation,
			Attrs: []xmldoc.Attr{{Name: AttrEducationType, Value: "false"}},
		})
	}
	return edu.Ensure(ElemModuleCourse)
}

// Group is a master record with its scheduled instances.
type Group struct {
	Parent   *CourseRecord
	Children []*CourseRecord
}

// ShortChildID shortens "4711_1234" to "...1234" for listings.
func ShortChildID(id string) string {
	if i := strings.LastIndex(id, "_"); i >= 0 {
		return "..." + id[i+1:]
	}
	return id
}
