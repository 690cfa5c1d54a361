package usuario

type Permissao string

const (
	DEV         Permissao = "DEV"
	TEC         Permissao = "TEC"
	ADM         Permissao = "ADM"
	USR         Permissao = "USR"
	PontoFocal  Permissao = "PONTO_FOCAL"
	Coordenador Permissao = "COORDENADOR"
	Portaria    Permissao = "PORTARIA"
)

// Todas segue a ordem usada nos formulários.
var Todas = []Permissao{DEV, ADM, Coordenador, PontoFocal, TEC, Portaria, USR}

var labels = map[Permissao]string{
	DEV:         "Desenvolvedor",
	TEC:         "Técnico",
	ADM:         "Administrador",
	USR:         "Usuário",
	PontoFocal:  "Ponto Focal",
	Coordenador: "Coordenador",
	Portaria:    "Portaria",
}

func (p Permissao) IsValid() bool {
	_, ok := labels[p]
	return ok
}

// Label devolve o nome exibido no crachá do usuário; valores
// desconhecidos aparecem como Portaria.
func (p Permissao) Label() string {
	if l, ok := labels[p]; ok {
		return l
	}
	return labels[Portaria]
}

// BadgeClass mapeia a permissão para a variante visual do crachá.
func (p Permissao) BadgeClass() string {
	switch p {
	case DEV, TEC:
		return "badge-default"
	case ADM:
		return "badge-destructive"
	case PontoFocal, Coordenador:
		return "badge-success"
	default:
		return "badge-secondary"
	}
}

func (p Permissao) In(ps ...Permissao) bool {
	for _, x := range ps {
		if p == x {
			return true
		}
	}
	return false
}

func (p Permissao) IsAdmOuDev() bool {
	return p.In(ADM, DEV)
}

// IsGestorCoordenadoria cobre os perfis com autoridade sobre uma
// coordenadoria (atribuição e reuniões).
func (p Permissao) IsGestorCoordenadoria() bool {
	return p.In(PontoFocal, Coordenador)
}

// --------------------------------------------------
// Regras de tela
// --------------------------------------------------

func PodeVerDashboard(p Permissao) bool {
	return p.In(ADM, DEV, PontoFocal, Coordenador)
}

func PodeImportar(p Permissao) bool {
	return p.IsAdmOuDev()
}

func PodeGerenciarCadastros(p Permissao) bool {
	return p.IsAdmOuDev()
}

func PodeGerenciarUsuarios(p Permissao) bool {
	return p.In(ADM, DEV, PontoFocal, Coordenador)
}

// PodeVerTecnicos cobre os perfis que chegam a um formulário de
// atribuição de técnico.
func PodeVerTecnicos(p Permissao) bool {
	return p.In(ADM, DEV, PontoFocal, Coordenador)
}

func PodeCriarAgendamento(p Permissao) bool {
	return p.In(ADM, DEV, Portaria)
}

func PodeExcluirAgendamento(p Permissao) bool {
	return p.IsAdmOuDev()
}

func PodeExportar(p Permissao) bool {
	return p.In(ADM, DEV, PontoFocal, Coordenador)
}

func PodeVerRegistroAcoes(p Permissao) bool {
	return p.IsAdmOuDev()
}

// RequerCoordenadoria indica os perfis que só existem vinculados a
// uma coordenadoria.
func RequerCoordenadoria(p Permissao) bool {
	return p.In(PontoFocal, TEC, Coordenador)
}

// OpcoesAtribuiveis lista as permissões que `by` pode conceder.
func OpcoesAtribuiveis(by Permissao) []Permissao {
	if by.IsGestorCoordenadoria() {
		return []Permissao{USR, PontoFocal, TEC}
	}
	if by.IsAdmOuDev() {
		return Todas
	}
	return nil
}

func PodeAtribuirPermissao(by, alvo Permissao) bool {
	for _, p := range OpcoesAtribuiveis(by) {
		if p == alvo {
			return true
		}
	}
	return false
}

// TituloHome devolve o título da lista inicial e se a tabela deve
// ser exibida.
func TituloHome(p Permissao) (string, bool) {
	switch p {
	case USR:
		return "Você não tem permissão para visualizar conteúdo.", false
	case TEC:
		return "Meus Agendamentos", true
	case PontoFocal, Coordenador:
		return "Agendamentos da Coordenadoria", true
	default:
		return "Agendamentos", true
	}
}

// OpcoesPersonificacao são os perfis que um DEV pode simular.
var OpcoesPersonificacao = []Permissao{ADM, TEC, USR, PontoFocal, Coordenador, Portaria}

func PodePersonificarComo(p Permissao) bool {
	return p.In(OpcoesPersonificacao...)
}
