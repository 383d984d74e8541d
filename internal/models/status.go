package models

// Status describes the loaded record store and retrieval settings.
type Status struct {
	DatabasePath string       `json:"database_path"`
	Rows         int64        `json:"rows"`
	Loaded       int          `json:"loaded"`
	Rejected     int          `json:"rejected"`
	Dimensions   map[int]int  `json:"dimensions"`
	Ranker       string       `json:"ranker"`
	Threshold    float64      `json:"similarity_threshold"`
	NameBoost    float64      `json:"name_boost"`
	Workers      int          `json:"workers"`
	Memory       MemoryStatus `json:"memory"`
}

// MemoryStatus is the query memory content, oldest first.
type MemoryStatus struct {
	Capacity int      `json:"capacity"`
	Entries  []string `json:"entries"`
}
