package domain

import (
	"slices"
	"time"
)

type SampleStatus string

const (
	SampleWaitingForCollection SampleStatus = "Waiting for Collection"
	SampleInVerification       SampleStatus = "In Verification"
	SampleVerified             SampleStatus = "Verified"
	SampleRejected             SampleStatus = "Rejected"
)

func (s SampleStatus) Valid() bool {
	switch s {
	case SampleWaitingForCollection, SampleInVerification, SampleVerified, SampleRejected:
		return true
	}
	return false
}

// SampleDraft is what a farmer fills in before the sample gets an id.
type SampleDraft struct {
	HoneyType      string `json:"honeyType"`
	HarvestDate    string `json:"harvestDate"`
	Quantity       string `json:"quantity"`
	Photo          string `json:"photo,omitempty"`
	Address        string `json:"address"`
	CollectionDate string `json:"collectionDate"`
	ContactPref    string `json:"contactPref"`
	FarmerID       string `json:"farmerId"`
}

type SampleSubmission struct {
	SampleDraft
	ID          string       `json:"id"`
	Status      SampleStatus `json:"status"`
	SubmittedAt string       `json:"submittedAt"`
}

func NewSample(id string, draft SampleDraft, now time.Time) SampleSubmission {
	return SampleSubmission{
		SampleDraft: draft,
		ID:          id,
		Status:      SampleWaitingForCollection,
		SubmittedAt: now.UTC().Format(DateLayout),
	}
}

// SampleLedger holds submissions newest first.
type SampleLedger struct {
	samples []SampleSubmission
}

func (l *SampleLedger) Prepend(s SampleSubmission) {
	l.samples = slices.Insert(l.samples, 0, s)
}

func (l *SampleLedger) Find(id string) (SampleSubmission, bool) {
	i := slices.IndexFunc(l.samples, func(s SampleSubmission) bool { return s.ID == id })
	if i < 0 {
		return SampleSubmission{}, false
	}
	return l.samples[i], true
}

// UpdateStatus reports whether a sample with the id existed.
func (l *SampleLedger) UpdateStatus(id string, status SampleStatus) bool {
	i := slices.IndexFunc(l.samples, func(s SampleSubmission) bool { return s.ID == id })
	if i < 0 {
		return false
	}
	l.samples[i].Status = status
	return true
}

func (l *SampleLedger) Len() int { return len(l.samples) }

func (l *SampleLedger) All() []SampleSubmission {
	return slices.Clone(l.samples)
}

func (l *SampleLedger) ByFarmer(farmerID string) []SampleSubmission {
	out := make([]SampleSubmission, 0)
	for _, s := range l.samples {
		if s.FarmerID == farmerID {
			out = append(out, s)
		}
	}
	return out
}
