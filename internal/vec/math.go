package vec

// FloorDiv выполняет целочисленное деление с округлением к минус бесконечности.
// b > 0
func FloorDiv(a, b int) int {
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}

// FloorMod возвращает остаток, согласованный с FloorDiv: всегда в [0, b).
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
