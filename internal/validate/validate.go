package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reDNI     = regexp.MustCompile(`^[0-9]{8}$`)
	reCelular = regexp.MustCompile(`^9[0-9]{8}$`)
	reSeccion = regexp.MustCompile(`^[a-z0-9-]{1,40}$`)
	reQ       = regexp.MustCompile(`^[A-Za-z0-9áéíóúñÁÉÍÓÚÑ '-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 60 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password mirrors the registration rule: at least 6 characters.
func Password(s string) bool {
	return len(s) >= 6 && len(s) <= 72
}

// DNI is the 8-digit national identity number.
func DNI(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDNI.MatchString(s)
}

// Celular is a 9-digit mobile number starting with 9.
func Celular(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCelular.MatchString(s)
}

func Nombre(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Seccion validates a section slug (lentes-sol, monturas, ...).
func Seccion(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reSeccion.MatchString(s)
}

// Q validates a search keyword.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ProductID parses a positive integer product id.
func ProductID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return id, err == nil && id > 0
}

// Qty parses a quantity, clamping to the 1..50 window to avoid abuse.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 50 {
		return 50
	}
	return n
}

// Price parses a money amount like "25.50". Rejects negatives and garbage so
// currency-string artifacts never reach the cart.
func Price(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "S/"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
