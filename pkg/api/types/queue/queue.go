package queue

// Summary counts the outstanding work of both review loops for one
// (tag, study) pair.
type Summary struct {
	Tag             int64 `json:"tag"`
	Study           int64 `json:"study"`
	Unreviewed      int   `json:"unreviewed"`
	DecisionPending int   `json:"decisionPending"`
}
