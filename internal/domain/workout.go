package domain

// Workout is a catalog entry a schedule can point at. The catalog is static
// reference data: seeded at startup, never mutated.
type Workout struct {
	ID   int    `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}
