package auth

// Claims identifica al operador que hace una escritura.
type Claims struct {
	UserID string
	Source string // "token" o "debug"
}
