package core

import (
	"strings"

	"github.com/google/uuid"
)

// Mutations follow a copy-on-write discipline: every operation returns a
// new Document and leaves the receiver untouched. On a validation error
// the returned Document is the receiver unchanged, so callers can treat
// the failure as a no-op and surface the error however they like.

// AddContractor appends a new contractor with a freshly generated id.
// The created contractor is returned so callers can reference it.
func (d Document) AddContractor(name, note string) (Document, Contractor, error) {
	c := Contractor{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(name),
		Note: strings.TrimSpace(note),
	}
	if err := c.Validate(); err != nil {
		return d, Contractor{}, err
	}
	out := d
	out.Contractors = append(append([]Contractor(nil), d.Contractors...), c)
	return out, c, nil
}

// RemoveContractor removes the contractor, every labourer employed by it,
// and every attendance record of those labourers. Removing an unknown id
// is a no-op.
func (d Document) RemoveContractor(contractorID string) Document {
	if _, ok := d.Contractor(contractorID); !ok {
		return d
	}

	out := d
	out.Contractors = make([]Contractor, 0, len(d.Contractors)-1)
	for _, c := range d.Contractors {
		if c.ID != contractorID {
			out.Contractors = append(out.Contractors, c)
		}
	}

	removed := make(map[string]bool)
	out.Labours = make([]Labour, 0, len(d.Labours))
	for _, l := range d.Labours {
		if l.ContractorID == contractorID {
			removed[l.ID] = true
			continue
		}
		out.Labours = append(out.Labours, l)
	}
	if len(removed) == 0 {
		// Keep the original slice so an untouched roster stays
		// bit-identical (nil stays nil).
		out.Labours = d.Labours
	}

	out.Attendance = pruneAttendance(d.Attendance, removed)
	return out
}

// AddLabour appends a new labourer under the given contractor. The daily
// rate must already be a positive whole number of currency units (ParseRate
// handles rounding of user input).
func (d Document) AddLabour(contractorID, name string, dailyRate int64) (Document, Labour, error) {
	l := Labour{
		ID:           uuid.NewString(),
		ContractorID: strings.TrimSpace(contractorID),
		Name:         strings.TrimSpace(name),
		DailyRate:    dailyRate,
	}
	if err := l.Validate(); err != nil {
		return d, Labour{}, err
	}
	if _, ok := d.Contractor(l.ContractorID); !ok {
		return d, Labour{}, ErrNoContractor
	}
	out := d
	out.Labours = append(append([]Labour(nil), d.Labours...), l)
	return out, l, nil
}

// RemoveLabour removes the labourer and all its attendance records.
// Removing an unknown id is a no-op.
func (d Document) RemoveLabour(labourID string) Document {
	if _, ok := d.Labour(labourID); !ok {
		return d
	}
	out := d
	out.Labours = make([]Labour, 0, len(d.Labours)-1)
	for _, l := range d.Labours {
		if l.ID != labourID {
			out.Labours = append(out.Labours, l)
		}
	}
	out.Attendance = pruneAttendance(d.Attendance, map[string]bool{labourID: true})
	return out
}

// SetAttendance upserts the presence flag for a (labourer, day) pair.
// An existing record is replaced in place, so the operation is idempotent
// and the one-record-per-day invariant holds.
func (d Document) SetAttendance(labourID, dateKey string, present bool) (Document, error) {
	if _, ok := d.Labour(labourID); !ok {
		return d, ErrNoLabour
	}
	if _, err := ParseDateKey(dateKey); err != nil {
		return d, ErrInvalidDate
	}

	id := AttendanceID(labourID, dateKey)
	out := d
	out.Attendance = append([]Attendance(nil), d.Attendance...)
	for i, a := range out.Attendance {
		if a.ID == id {
			out.Attendance[i].Present = present
			return out, nil
		}
	}
	out.Attendance = append(out.Attendance, Attendance{
		ID:       id,
		LabourID: labourID,
		Date:     dateKey,
		Present:  present,
	})
	return out, nil
}

func pruneAttendance(in []Attendance, removedLabours map[string]bool) []Attendance {
	out := make([]Attendance, 0, len(in))
	for _, a := range in {
		if removedLabours[a.LabourID] {
			continue
		}
		out = append(out, a)
	}
	if len(out) == len(in) {
		return in
	}
	return out
}
