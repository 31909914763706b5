package domain

// Provenance records where and by whom a context was created. It is set once
// at construction and never mutated afterward; it exists for debugging loaded
// contexts that were created on other hosts.
type Provenance struct {
	User       string `json:"user"`
	Host       string `json:"host"`
	Platform   string `json:"platform"`
	Arch       string `json:"arch"`
	OS         string `json:"os"`
	Shell      string `json:"shell"`
	RezVersion string `json:"rez_version"`
	RezPath    string `json:"rez_path"`

	// Created is the creation time in epoch seconds.
	Created int64 `json:"created"`
}
