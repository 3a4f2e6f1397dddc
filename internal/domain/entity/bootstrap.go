package entity

import "time"

// BootstrapResult represents the outcome for one environment.
type BootstrapResult struct {
	Environment Environment   `json:"environment"`
	Command     string        `json:"command"`
	Success     bool          `json:"success"`
	Verified    *bool         `json:"verified,omitempty"`
	Output      string        `json:"output,omitempty"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Summary agrega os resultados de uma execução, na ordem dos ambientes.
type Summary struct {
	Identity   Identity          `json:"identity"`
	Results    []BootstrapResult `json:"results"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

// Successful counts the environments that bootstrapped.
func (s Summary) Successful() int {
	n := 0
	for _, r := range s.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// Total is the number of recorded environments.
func (s Summary) Total() int {
	return len(s.Results)
}

// AllSucceeded is false for an empty summary.
func (s Summary) AllSucceeded() bool {
	return s.Total() > 0 && s.Successful() == s.Total()
}
