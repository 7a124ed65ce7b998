// Package session holds the state of one load/edit/export cycle over a catalog.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kursnet-xml-tool/internal/dates"
	"kursnet-xml-tool/internal/domain"
	"kursnet-xml-tool/internal/errors"
	"kursnet-xml-tool/internal/grouping"
	"kursnet-xml-tool/internal/openqcat"
	"kursnet-xml-tool/internal/reconcile"
	"kursnet-xml-tool/internal/validation"
	"kursnet-xml-tool/internal/xmldoc"
)

// Session owns the original snapshot, the working set and the removal log.
// All methods are safe for concurrent use; loads, edits and exports never
// interleave.
type Session struct {
	mu sync.Mutex

	id      string
	charset string
	logger  *zap.Logger

	loaded     bool
	header     *xmldoc.Node
	shape      openqcat.Shape
	original   []*domain.CourseRecord
	current    []*domain.CourseRecord
	deletedIDs []string

	ids *idGenerator
}

// Option configures a Session.
type Option func(*Session)

// WithCharset sets the charset raw input is decoded from.
func WithCharset(charset string) Option {
	return func(s *Session) { s.charset = charset }
}

// WithIDSource replaces the random source for derived record ids.
func WithIDSource(intn func(n int) int) Option {
	return func(s *Session) { s.ids.intn = intn }
}

// New returns an empty session.
func New(logger *zap.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		id:      uuid.New().String(),
		charset: openqcat.CharsetLatin9,
		ids:     newIDGenerator(),
	}
	for _, o := range opts {
		o(s)
	}
	s.logger = logger.With(zap.String("sessionID", s.id))
	return s
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Load decodes and parses raw catalog bytes and replaces the whole session
// state with the result. On any error the previous state is kept.
func (s *Session) Load(raw []byte) (int, error) {
	text, err := openqcat.Decode(raw, s.charset)
	if err != nil {
		return 0, err
	}
	return s.LoadText(text)
}

// LoadText is Load for already decoded text.
func (s *Session) LoadText(text string) (int, error) {
	cat, err := openqcat.ParseCatalog(text)
	if err != nil {
		s.logger.Warn("Catalog load failed", zap.Error(err))
		return 0, fmt.Errorf("session: load catalog: %w", err)
	}

	original := make([]*domain.CourseRecord, len(cat.Records))
	for i, r := range cat.Records {
		original[i] = r.Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.header = cat.Header.Clone()
	s.shape = cat.Shape
	s.original = original
	s.current = cat.Records
	s.deletedIDs = nil

	s.logger.Info("Loaded catalog", zap.Int("records", len(cat.Records)), zap.String("shape", string(cat.Shape)))
	return len(cat.Records), nil
}

// Loaded reports whether a catalog has been loaded.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Shape returns the course list the catalog was loaded from.
func (s *Session) Shape() openqcat.Shape {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shape
}

// Header returns a copy of the catalog header, nil if the document had none.
func (s *Session) Header() *xmldoc.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.header.Clone()
}

// Records returns copies of the working set in display order.
func (s *Session) Records() []*domain.CourseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.current)
}

// Record returns a copy of the record with the given id.
func (s *Session) Record(id string) (*domain.CourseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.NewNotFoundError("course", id)
	}
	return s.current[i].Clone(), nil
}

// DeletedIDs returns the removal log.
func (s *Session) DeletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletedIDs...)
}

// Groups partitions a copy of the working set into master records and instances.
func (s *Session) Groups() []domain.Group {
	return grouping.Group(s.Records())
}

// Orphans lists instances whose master record is not in the working set.
func (s *Session) Orphans() []*domain.CourseRecord {
	return grouping.Orphans(s.Records())
}

// GroupReport is a group with its validation findings.
type GroupReport struct {
	Group    domain.Group
	Warnings []validation.Warning
}

// Warnings validates every group of the working set.
func (s *Session) Warnings() []GroupReport {
	groups := s.Groups()
	out := make([]GroupReport, 0, len(groups))
	for _, g := range groups {
		out = append(out, GroupReport{Group: g, Warnings: validation.Evaluate(g)})
	}
	return out
}

// Update runs fn on the live record with the given id.
func (s *Session) Update(id string, fn func(r *domain.CourseRecord) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("course", id)
	}
	if err := fn(s.current[i]); err != nil {
		return fmt.Errorf("session: update %s: %w", id, err)
	}
	s.logger.Debug("Updated course", zap.String("courseID", id))
	return nil
}

// ProjectEndDate sets END_DATE of the record from its start date and a
// duration in weeks. It returns false and changes nothing when the start
// date or duration is unusable.
func (s *Session) ProjectEndDate(id string, weeks float64) (string, bool, error) {
	var (
		end string
		ok  bool
	)
	err := s.Update(id, func(r *domain.CourseRecord) error {
		end, ok = dates.ProjectEndDate(r.StartDate(), weeks)
		if ok {
			r.SetEndDate(end)
		}
		return nil
	})
	return end, ok, err
}

// AddDerivedRecord appends a new scheduled instance of parentID: a copy of
// the parent with a fresh id, a course reference to the parent's base id
// and emptied title, description and dates. A copy of the new record is
// returned.
func (s *Session) AddDerivedRecord(parentID string) (*domain.CourseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(parentID)
	if i < 0 {
		return nil, errors.NewNotFoundError("course", parentID)
	}
	parent := s.current[i]

	base := baseID(parent.ProductID())
	newID := s.ids.next(base, s.usedIDs())

	child := parent.Clone()
	child.SetProductID(newID)
	child.SetSupplierAltPID(newID)
	child.SetCourseReferenceID(base)

	if details := child.Node().Child(domain.ElemServiceDetails); details != nil {
		details.SetChildText(domain.ElemTitle, "")
		details.SetChildText(domain.ElemDescriptionLong, "")
		if child.HasServiceDate() {
			child.SetStartDate("")
			child.SetEndDate("")
		}
	}

	s.current = append(s.current, child)
	s.logger.Info("Added course date", zap.String("courseID", newID), zap.String("parentID", base))
	return child.Clone(), nil
}

// RemoveRecord drops the first record with the given id from the working set
// and logs its id for deletion.
func (s *Session) RemoveRecord(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.NewNotFoundError("course", id)
	}
	if pid := s.current[i].ProductID(); pid != "" {
		s.deletedIDs = append(s.deletedIDs, pid)
	}
	s.current = append(s.current[:i:i], s.current[i+1:]...)
	s.logger.Info("Removed course", zap.String("courseID", id))
	return nil
}

// Diff computes the update set against the loaded catalog.
func (s *Session) Diff() reconcile.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diffLocked()
}

func (s *Session) diffLocked() reconcile.Result {
	res := reconcile.Diff(s.original, s.current, s.deletedIDs)
	res.Changed = cloneAll(res.Changed)
	return res
}

// ExportDiff renders the differential update document. It fails with
// ErrInvalidSequenceNumber for seqNumber <= 0 and with ErrNoChanges when
// nothing was added, changed or removed.
func (s *Session) ExportDiff(seqNumber int) ([]byte, error) {
	if seqNumber <= 0 {
		return nil, fmt.Errorf("session: export: %w: %d", errors.ErrInvalidSequenceNumber, seqNumber)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		return nil, fmt.Errorf("session: export: %w", errors.ErrNoCatalog)
	}

	res := s.diffLocked()
	if res.Empty() {
		s.logger.Info("No changes to export")
		return nil, errors.ErrNoChanges
	}

	clean := reconcile.Sanitize(res.Changed)
	root := openqcat.FromRecords(clean, s.header, seqNumber, res.DeletedIDs)
	out := openqcat.Render(root)

	s.logger.Info("Exported differential update",
		zap.Int("seqNumber", seqNumber),
		zap.Int("changed", len(res.Changed)),
		zap.Int("new", res.New),
		zap.Int("deleted", len(res.DeletedIDs)),
	)
	return out, nil
}

// ExportFull is switched off; full deliveries overwrite the provider's
// whole catalog upstream.
func (s *Session) ExportFull() ([]byte, error) {
	return nil, errors.ErrFullExportDisabled
}

func (s *Session) indexOf(id string) int {
	for i, r := range s.current {
		if r.ProductID() == id {
			return i
		}
	}
	return -1
}

func (s *Session) usedIDs() map[string]bool {
	used := make(map[string]bool, len(s.current)+len(s.original)+len(s.deletedIDs))
	for _, r := range s.current {
		used[r.ProductID()] = true
	}
	for _, r := range s.original {
		used[r.ProductID()] = true
	}
	for _, id := range s.deletedIDs {
		used[id] = true
	}
	return used
}

func cloneAll(rs []*domain.CourseRecord) []*domain.CourseRecord {
	out := make([]*domain.CourseRecord, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}
	return out
}
