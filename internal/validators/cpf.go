package validators

import "strings"

func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MaskCPF exibe apenas os 3 primeiros e os 2 últimos dígitos
// (NNN.XXX.XXX-NN). Valores que não têm 11 dígitos voltam como vieram.
func MaskCPF(cpf string) string {
	if strings.TrimSpace(cpf) == "" {
		return "-"
	}

	digits := OnlyDigits(cpf)
	if len(digits) != 11 {
		return cpf
	}

	return digits[:3] + ".XXX.XXX-" + digits[9:]
}
