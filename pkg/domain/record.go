package domain

import "time"

// Record is a persisted Verdict.
type Record struct {
	ID        string    `json:"id"`
	Verdict   *Verdict  `json:"verdict"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy so stores can isolate their data from callers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Verdict = r.Verdict.Clone()
	return &c
}
