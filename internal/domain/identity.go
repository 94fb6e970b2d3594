package domain

// Identity representa uma pessoa cadastrada no sistema
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// User is an Identity as stored in the relational ledger, with the
// enrollment timestamp the original schema keeps alongside it.
type User struct {
	Identity
	RegisteredAt string `json:"registered_at"`
}

// GalleryEntry pairs an identity with its single representative embedding.
// The embedding is owned by the gallery; Snapshot hands out copies.
type GalleryEntry struct {
	Identity  Identity
	Embedding []float64
}
