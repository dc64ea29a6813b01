package restrict

import (
	"golang.org/x/text/language"

	"netrestrict/internal/views"
)

// Message keys are the English source strings.
const (
	msgDeniedTitle    = "Access restricted"
	msgDeniedIntro    = `You attempted to access "%[1]s", but you do not currently have privileges on this site. If you believe you should be able to access "%[1]s", please contact your network administrator.`
	msgDeniedHelp     = "If you reached this screen by accident and meant to visit one of your own sites, here are some shortcuts to help you find your way."
	msgYourSites      = "Your Sites"
	msgVisitDashboard = "Visit Dashboard"
	msgViewSite       = "View Site"
	msgNoSites        = "You are not a member of any site yet."
	msgRestrictUser   = "Restrict User Access"
	msgRestrictUserD  = "If checked, the user will only be able to access sites they're a member of."
	msgRestrictNew    = "Restrict New Users"
	msgRestrictNewD   = "If checked, newly registered users will only be able to access sites they're a member of."
)

func init() {
	views.Translate(language.BrazilianPortuguese, map[string]string{
		msgDeniedTitle:    "Acesso restrito",
		msgDeniedIntro:    `Você tentou acessar "%[1]s", mas atualmente não tem privilégios neste site. Se você acredita que deveria poder acessar "%[1]s", entre em contato com o administrador da rede.`,
		msgDeniedHelp:     "Se você chegou a esta tela por engano e pretendia visitar um de seus próprios sites, aqui estão alguns atalhos para ajudá-lo a encontrar o caminho.",
		msgYourSites:      "Seus sites",
		msgVisitDashboard: "Visitar painel",
		msgViewSite:       "Ver site",
		msgNoSites:        "Você ainda não é membro de nenhum site.",
		msgRestrictUser:   "Restringir acesso do usuário",
		msgRestrictUserD:  "Se marcado, o usuário só poderá acessar os sites dos quais é membro.",
		msgRestrictNew:    "Restringir novos usuários",
		msgRestrictNewD:   "Se marcado, novos usuários só poderão acessar os sites dos quais são membros.",
	})
}
