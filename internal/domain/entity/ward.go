package entity

// Ward sala del hospital hacia la que se descarga stock.
type Ward struct {
	Code        string
	Description string
}
