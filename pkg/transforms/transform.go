package transforms

// An Escaper iterates z for a fixed sample point c of the complex plane.
type Escaper interface {
	Next(z complex128, c complex128) complex128
}
