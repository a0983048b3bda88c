package auth

// Claims es el principal autenticado que el proveedor de identidad externo
// le entrega al core. El core nunca verifica credenciales por su cuenta.
type Claims struct {
	UserID string
	Email  string
	Name   string
}
