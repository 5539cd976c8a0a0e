package core

import (
	"errors"
	"strings"
)

type (
	// Contractor employs one or more labourers.
	Contractor struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Note string `json:"note,omitempty"`
	}

	// Labour is a worker employed by exactly one contractor, paid a
	// fixed rate per day present. DailyRate is a whole number of
	// currency units (see ParseRate).
	Labour struct {
		ID           string `json:"id"`
		ContractorID string `json:"contractorId"`
		Name         string `json:"name"`
		DailyRate    int64  `json:"dailyRate"`
	}

	// Attendance is a per-day presence flag for one labourer. ID is the
	// composite key "<labourId>:<yyyy-mm-dd>", so at most one record can
	// exist per labourer per calendar day.
	Attendance struct {
		ID       string `json:"id"`
		LabourID string `json:"labourId"`
		Date     string `json:"date"`
		Present  bool   `json:"present"`
	}

	// Document is the complete persisted state. It is an immutable
	// value: mutation methods return a fresh Document and never touch
	// the receiver's slices.
	Document struct {
		Contractors []Contractor `json:"contractors"`
		Labours     []Labour     `json:"labours"`
		Attendance  []Attendance `json:"attendance"`
	}
)

var (
	ErrEmptyName    = errors.New("empty name")
	ErrNoContractor = errors.New("missing contractor")
	ErrNoLabour     = errors.New("unknown labourer")
	ErrInvalidRate  = errors.New("invalid daily rate")
	ErrInvalidDate  = errors.New("invalid date")
)

func (c Contractor) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (l Labour) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(l.ContractorID) == "" {
		return ErrNoContractor
	}
	if l.DailyRate <= 0 {
		return ErrInvalidRate
	}
	return nil
}

// Contractor returns the contractor with the given id.
func (d Document) Contractor(id string) (Contractor, bool) {
	for _, c := range d.Contractors {
		if c.ID == id {
			return c, true
		}
	}
	return Contractor{}, false
}

// Labour returns the labourer with the given id.
func (d Document) Labour(id string) (Labour, bool) {
	for _, l := range d.Labours {
		if l.ID == id {
			return l, true
		}
	}
	return Labour{}, false
}

// ContractorLabours returns the labourers employed by the given contractor,
// in document order.
func (d Document) ContractorLabours(contractorID string) []Labour {
	var out []Labour
	for _, l := range d.Labours {
		if l.ContractorID == contractorID {
			out = append(out, l)
		}
	}
	return out
}

// AttendanceID builds the composite record key for a labourer and a day.
func AttendanceID(labourID, dateKey string) string {
	return labourID + ":" + dateKey
}
