package agendamento

import "github.com/BruksfildServices01/agendamento-smul/internal/domain/usuario"

// Acoes é a linha da matriz de visibilidade: o que o usuário pode
// fazer com um agendamento.
type Acoes struct {
	PodeAtribuir       bool
	PodeConfirmar      bool
	PodeAlterar        bool
	PodeAgendarReuniao bool

	// botão de reunião aparece (desabilitado) para quem gere a
	// coordenadoria mesmo quando a ação não se aplica
	MostrarReuniao bool

	SemTecnico bool
	Destacar   bool
	Nenhuma    bool
}

// CalcularAcoes aplica a matriz para a permissão efetiva e o id do
// usuário logado.
func CalcularAcoes(a Agendamento, p usuario.Permissao, usuarioID string) Acoes {
	semTecnico := a.SemTecnico()
	tecnicoIDMatch := a.TecnicoID != "" && a.TecnicoID == usuarioID
	gestor := p.IsGestorCoordenadoria()

	var ac Acoes
	ac.SemTecnico = semTecnico

	ac.PodeAtribuir = a.CoordenadoriaID != "" &&
		(gestor || (p.IsAdmOuDev() && a.Status.IsConfirmado()))

	ac.PodeConfirmar = p.In(usuario.TEC, usuario.ADM, usuario.DEV, usuario.Coordenador) &&
		tecnicoIDMatch &&
		a.Status.IsPendente() &&
		!semTecnico

	ac.PodeAlterar = a.Status.IsConfirmado() &&
		!semTecnico &&
		((p == usuario.TEC && tecnicoIDMatch) || p.IsAdmOuDev() || gestor)

	ac.PodeAgendarReuniao = gestor &&
		!semTecnico &&
		a.Status == StatusSolicitado

	ac.MostrarReuniao = gestor
	ac.Destacar = semTecnico || a.Status == StatusAgendado
	ac.Nenhuma = !ac.PodeAtribuir && !ac.PodeConfirmar && !ac.PodeAlterar && !gestor

	return ac
}

// PodeRegistrarResultado cobre tanto a primeira confirmação quanto a
// alteração de um resultado já registrado.
func (ac Acoes) PodeRegistrarResultado() bool {
	return ac.PodeConfirmar || ac.PodeAlterar
}
