package models

// Credential is a named secret kept in the household vault, such as the
// wifi password or a shared streaming login. The Value field holds plaintext
// in memory only; the store persists the sealed ciphertext.
type Credential struct {
	// ID is assigned by the store on insert.
	ID int64

	// Name identifies the secret (e.g., "wifi", "netflix").
	Name string

	// Value is the secret itself.
	Value string

	// PersonID optionally ties the credential to a housemate. Zero means
	// it belongs to the house.
	PersonID int64
}
