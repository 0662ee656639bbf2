package transforms

// Mandelbrot is the quadratic map z -> z*z + c, shifted by a constant C.
// The classic set uses the zero value.
type Mandelbrot struct {
	C complex128
}

func (m Mandelbrot) Next(z complex128, c complex128) complex128 {
	return z*z + c + m.C
}

var _ Escaper = Mandelbrot{}
