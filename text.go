package main

import "strings"

// Supported locales.
const (
	LocaleEN   = "en"
	LocalePTBR = "pt-BR"
)

// Text holds one string per locale.
type Text struct {
	EN   string `json:"en"`
	PTBR string `json:"ptBR"`
}

// In returns the text for locale, defaulting to English.
func (t Text) In(locale string) string {
	if locale == LocalePTBR && t.PTBR != "" {
		return t.PTBR
	}
	return t.EN
}

type PersonalInfo struct {
	Name      string
	Title     Text
	Email     string
	GitHub    string
	LinkedIn  string
	WhatsApp  string
	Location  string
	AvatarURL string
	Bio       Text
}

type ProjectVersion struct {
	Name         string
	Description  Text
	Technologies []string
}

type Project struct {
	ID           string
	Name         string
	Description  Text
	Technologies []string
	GitHubURL    string
	LiveURL      string
	IsPrivate    bool
	Stars        int
	Featured     bool
	Status       string
	Versions     []ProjectVersion
}

type Skill struct {
	Name     string
	Icon     string
	Category string
	Level    int
}

type Experience struct {
	ID           string
	Company      string
	Role         Text
	Description  Text
	StartDate    string
	EndDate      string
	Technologies []string
	Location     string
	IsCurrent    bool
}

// Content is the static data behind every page and the résumé.
type Content struct {
	Info        PersonalInfo
	Projects    []Project
	Skills      []Skill
	Experiences []Experience
}

// Skill categories in display order.
var skillCategories = []struct {
	Key   string
	Label Text
}{
	{"frontend", Text{EN: "Frontend", PTBR: "Frontend"}},
	{"backend", Text{EN: "Backend", PTBR: "Backend"}},
	{"ai", Text{EN: "AI & ML", PTBR: "IA & ML"}},
	{"tools", Text{EN: "Tools", PTBR: "Ferramentas"}},
}

var siteContent = Content{
	Info: PersonalInfo{
		Name:      "David Assef Carneiro",
		Title:     Text{EN: "Full-Stack Developer & AI Engineer", PTBR: "Desenvolvedor Full-Stack & Engenheiro de IA"},
		Email:     "davidassef@email.com",
		GitHub:    "https://github.com/davidassef",
		LinkedIn:  "https://linkedin.com/in/davidassef",
		WhatsApp:  "+5585996642441",
		Location:  "Fortaleza, CE - Brazil",
		AvatarURL: "https://avatars.githubusercontent.com/u/161294012?v=4",
		Bio: Text{
			EN:   `AI-driven developer building smart tools with ML, voice cloning & music generation. Clean code advocate with a passion for automated testing and comprehensive documentation.`,
			PTBR: `Desenvolvedor orientado por IA construindo ferramentas inteligentes com ML, clonagem de voz e geração de música. Defensor do código limpo com paixão por testes automatizados e documentação abrangente.`,
		},
	},

	Projects: []Project{
		{
			ID:   "omentalista",
			Name: "O Mentalista",
			Description: Text{
				EN:   `Challenge the Mentalist! An interactive web application that guesses the symbol you thought of. Combines a mathematical trick with a paginated user interface, creating a perfect illusion.`,
				PTBR: `Desafie o Mentalista! Uma aplicação web interativa que adivinha o símbolo que você pensou. Combina um truque matemático com uma interface de utilizador com paginação, criando uma ilusão perfeita.`,
			},
			Technologies: []string{"HTML", "CSS", "JavaScript"},
			GitHubURL:    "https://github.com/davidassef/OMentalista",
			LiveURL:      "https://davidassef.github.io/OMentalista",
			Featured:     true,
			Status:       "production",
		},
		{
			ID:   "pokeapi",
			Name: "PokeAPI Pokédex",
			Description: Text{
				EN:   `A modern Pokédex built with TypeScript and the PokeAPI. Features include search, filtering, and detailed Pokémon information with a sleek UI.`,
				PTBR: `Uma Pokédex moderna construída com TypeScript e PokeAPI. Inclui busca, filtros e informações detalhadas dos Pokémon com uma interface elegante.`,
			},
			Technologies: []string{"TypeScript", "React", "REST API", "CSS"},
			GitHubURL:    "https://github.com/davidassef/PokeAPI",
			Stars:        2,
			Featured:     true,
			Status:       "production",
		},
		{
			ID:   "schedule-shutdown",
			Name: "Schedule Shutdown",
			Description: Text{
				EN:   `Windows automation tool for scheduling system shutdown/restart. Two versions available: v1 with Tkinter and v2 with modern PyQt6 interface.`,
				PTBR: `Ferramenta de automação Windows para agendar desligamento/reinicialização. Duas versões disponíveis: v1 com Tkinter e v2 com interface moderna PyQt6.`,
			},
			Technologies: []string{"Python", "Tkinter", "PyQt6", "Windows API"},
			GitHubURL:    "https://github.com/davidassef/schedule_shutdown",
			Stars:        1,
			Featured:     true,
			Status:       "production",
			Versions: []ProjectVersion{
				{
					Name:         "v1 - Classic",
					Description:  Text{EN: "Original version with simple Tkinter interface. Lightweight and portable.", PTBR: "Versão original com interface Tkinter simples. Leve e portátil."},
					Technologies: []string{"Python", "Tkinter", "Windows API"},
				},
				{
					Name:         "v2 - Modern",
					Description:  Text{EN: "Modern version with PyQt6 interface. Enhanced UI with themes, system tray, and scheduled tasks.", PTBR: "Versão moderna com interface PyQt6. UI aprimorada com temas, system tray e tarefas agendadas."},
					Technologies: []string{"Python", "PyQt6", "Qt Designer", "Windows API"},
				},
			},
		},
		{
			ID:   "amazon-search",
			Name: "Amazon Search Scraper",
			Description: Text{
				EN:   `Web scraper for extracting Amazon product listings from search results. Demonstrates modern data extraction techniques with rate limiting.`,
				PTBR: `Web scraper para extrair listagens de produtos da Amazon. Demonstra técnicas modernas de extração de dados com rate limiting.`,
			},
			Technologies: []string{"JavaScript", "Node.js", "Puppeteer"},
			GitHubURL:    "https://github.com/davidassef/Amazon-Search",
			Stars:        1,
			Status:       "production",
		},
		{
			ID:   "desafio-2025",
			Name: "Animal Adoption System",
			Description: Text{
				EN:   `Technical challenge implementing smart matching algorithms to assist animal adoption processes. Connects pets with ideal adopters.`,
				PTBR: `Desafio técnico implementando algoritmos de matching inteligente para auxiliar processos de adoção de animais. Conecta pets com adotantes ideais.`,
			},
			Technologies: []string{"JavaScript", "Algorithms", "Logic"},
			GitHubURL:    "https://github.com/davidassef/desafio-davidassef-2025",
			Status:       "challenge",
		},
		{
			ID:   "recibofast",
			Name: "ReciboFast",
			Description: Text{
				EN:   `Complete receipt management solution for rent and other income types. Features user authentication, database management, and maximum data protection with encryption.`,
				PTBR: `Solução completa de gerenciamento de recibos para aluguéis e outras receitas. Inclui autenticação de usuários, gerenciamento de banco de dados e máxima proteção de dados com criptografia.`,
			},
			Technologies: []string{"TypeScript", "React", "Next.js", "PostgreSQL", "Go"},
			IsPrivate:    true,
			Featured:     true,
			Status:       "staging",
		},
		{
			ID:   "jinglemagico",
			Name: "Jingle Mágico",
			Description: Text{
				EN:   `AI-powered jingle generator that creates custom audio content using advanced music generation technology. Enables users to create unique audio for their projects.`,
				PTBR: `Gerador de jingles com IA que cria conteúdo de áudio personalizado usando tecnologia avançada de geração de música. Permite que usuários criem áudio único para seus projetos.`,
			},
			Technologies: []string{"TypeScript", "React", "AI/ML", "Audio API"},
			IsPrivate:    true,
			Featured:     true,
			Status:       "staging",
		},
		{
			ID:   "lotoscore",
			Name: "LotoScore",
			Description: Text{
				EN:   `Lottery analytics platform with statistical analysis, number frequency tracking, and pattern recognition for Brazilian lotteries. Advanced data visualization.`,
				PTBR: `Plataforma de análise de loteria com análise estatística, rastreamento de frequência e reconhecimento de padrões para loterias brasileiras. Visualização avançada de dados.`,
			},
			Technologies: []string{"TypeScript", "React", "Next.js", "PostgreSQL"},
			IsPrivate:    true,
			Featured:     true,
			Status:       "staging",
		},
		{
			ID:   "central-ia",
			Name: "Central IA Infrastructure",
			Description: Text{
				EN:   `AI infrastructure management system for orchestrating multiple AI services, models, and APIs. Centralized dashboard for monitoring and deployment.`,
				PTBR: `Sistema de gerenciamento de infraestrutura de IA para orquestrar múltiplos serviços, modelos e APIs. Dashboard centralizado para monitoramento e deploy.`,
			},
			Technologies: []string{"Python", "Docker", "FastAPI", "Redis"},
			IsPrivate:    true,
			Featured:     true,
			Status:       "staging",
		},
	},

	Skills: []Skill{
		{"React", "react", "frontend", 5},
		{"Next.js", "nextjs", "frontend", 5},
		{"TypeScript", "typescript", "frontend", 5},
		{"Tailwind CSS", "tailwind", "frontend", 5},
		{"HTML/CSS", "html", "frontend", 5},

		{"Node.js", "nodejs", "backend", 4},
		{"Go", "go", "backend", 4},
		{"Python", "python", "backend", 5},
		{"Django", "django", "backend", 4},
		{"PostgreSQL", "postgresql", "backend", 4},
		{"SQL Server", "sqlserver", "backend", 4},

		{"Machine Learning", "ml", "ai", 4},
		{"OpenAI API", "openai", "ai", 5},
		{"LangChain", "langchain", "ai", 4},
		{"Dify & RAG", "dify", "ai", 4},
		{"Voice Cloning", "voice", "ai", 4},

		{"Git", "git", "tools", 5},
		{"Docker", "docker", "tools", 4},
		{"AWS (Lightsail/S3)", "aws", "tools", 4},
		{"Vercel", "vercel", "tools", 5},
		{"Render", "render", "tools", 4},
		{"Linux/VPS", "linux", "tools", 4},
	},

	Experiences: []Experience{
		{
			ID:      "intra-solucoes",
			Company: "Intra Soluções",
			Role:    Text{EN: "Junior Full-Stack Developer", PTBR: "Desenvolvedor Full-Stack Júnior"},
			Description: Text{
				EN:   `Working on enterprise web applications, developing frontend and backend features, integrating APIs, and collaborating with the team to deliver high-quality software solutions.`,
				PTBR: `Trabalhando em aplicações web empresariais, desenvolvendo funcionalidades frontend e backend, integrando APIs e colaborando com a equipe para entregar soluções de software de alta qualidade.`,
			},
			StartDate:    "2025",
			Technologies: []string{"React", "Next.js", "Node.js", "PostgreSQL"},
			Location:     "Fortaleza, CE",
			IsCurrent:    true,
		},
		{
			ID:      "freelance",
			Company: "Freelance",
			Role:    Text{EN: "Full-Stack Developer & AI Consultant", PTBR: "Desenvolvedor Full-Stack & Consultor de IA"},
			Description: Text{
				EN:   `Building custom software solutions for clients, specializing in AI integration, web applications, and automation tools. Delivering end-to-end solutions from architecture to deployment.`,
				PTBR: `Construindo soluções de software personalizadas para clientes, especializado em integração de IA, aplicações web e ferramentas de automação. Entregando soluções completas da arquitetura ao deploy.`,
			},
			StartDate:    "2025",
			Technologies: []string{"React", "Next.js", "Python", "Go", "AI/ML"},
			Location:     "Remote",
		},
	},
}

// normalizeLocale maps query and Accept-Language values onto a supported
// locale. Anything Portuguese becomes pt-BR; everything else is English.
func normalizeLocale(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "pt") {
		return LocalePTBR
	}
	return LocaleEN
}

// Views handed to templates and the JSON API.

type ProjectView struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	GitHubURL    string   `json:"githubUrl,omitempty"`
	LiveURL      string   `json:"liveUrl,omitempty"`
	IsPrivate    bool     `json:"isPrivate"`
	Stars        int      `json:"stars"`
	Featured     bool     `json:"featured"`
	Status       string   `json:"status,omitempty"`
}

type SkillGroupView struct {
	Category string   `json:"category"`
	Label    string   `json:"label"`
	Skills   []string `json:"skills"`
}

type ExperienceView struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Technologies []string `json:"technologies"`
	Location     string   `json:"location,omitempty"`
	IsCurrent    bool     `json:"isCurrent"`
}

type ContentView struct {
	Locale      string           `json:"locale"`
	Name        string           `json:"name"`
	Title       string           `json:"title"`
	Bio         string           `json:"bio"`
	Email       string           `json:"email"`
	GitHub      string           `json:"github"`
	LinkedIn    string           `json:"linkedin"`
	WhatsApp    string           `json:"whatsapp"`
	Location    string           `json:"location"`
	AvatarURL   string           `json:"avatarUrl"`
	Projects    []ProjectView    `json:"projects"`
	Skills      []SkillGroupView `json:"skills"`
	Experiences []ExperienceView `json:"experiences"`
	Stats       map[string]int   `json:"stats"`
}

// SkillsByCategory groups skill names in category display order. Empty
// categories are omitted.
func (c Content) SkillsByCategory(locale string) []SkillGroupView {
	var groups []SkillGroupView
	for _, cat := range skillCategories {
		var names []string
		for _, s := range c.Skills {
			if s.Category == cat.Key {
				names = append(names, s.Name)
			}
		}
		if len(names) == 0 {
			continue
		}
		groups = append(groups, SkillGroupView{Category: cat.Key, Label: cat.Label.In(locale), Skills: names})
	}
	return groups
}

// FeaturedProjects returns the projects flagged for the résumé.
func (c Content) FeaturedProjects() []Project {
	var out []Project
	for _, p := range c.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func presentLabel(locale string) string {
	return Text{EN: "Present", PTBR: "Presente"}.In(locale)
}

// Localize flattens c into the view for locale.
func (c Content) Localize(locale string) ContentView {
	locale = normalizeLocale(locale)

	v := ContentView{
		Locale:    locale,
		Name:      c.Info.Name,
		Title:     c.Info.Title.In(locale),
		Bio:       c.Info.Bio.In(locale),
		Email:     c.Info.Email,
		GitHub:    c.Info.GitHub,
		LinkedIn:  c.Info.LinkedIn,
		WhatsApp:  c.Info.WhatsApp,
		Location:  c.Info.Location,
		AvatarURL: c.Info.AvatarURL,
		Skills:    c.SkillsByCategory(locale),
	}

	for _, p := range c.Projects {
		v.Projects = append(v.Projects, ProjectView{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description.In(locale),
			Technologies: p.Technologies,
			GitHubURL:    p.GitHubURL,
			LiveURL:      p.LiveURL,
			IsPrivate:    p.IsPrivate,
			Stars:        p.Stars,
			Featured:     p.Featured,
			Status:       p.Status,
		})
	}

	for _, e := range c.Experiences {
		end := e.EndDate
		if end == "" {
			end = presentLabel(locale)
		}
		v.Experiences = append(v.Experiences, ExperienceView{
			Company:      e.Company,
			Role:         e.Role.In(locale),
			Description:  e.Description.In(locale),
			StartDate:    e.StartDate,
			EndDate:      end,
			Technologies: e.Technologies,
			Location:     e.Location,
			IsCurrent:    e.IsCurrent,
		})
	}

	distinct := map[string]struct{}{}
	for _, s := range c.Skills {
		distinct[s.Name] = struct{}{}
	}
	v.Stats = map[string]int{
		"projects":     len(c.Projects),
		"technologies": len(distinct),
		"yearsExp":     1,
	}
	return v
}

var githubText = map[string]Text{
	"title":         {EN: "GitHub Activity", PTBR: "Atividade no GitHub"},
	"subtitle":      {EN: "My latest contributions and repositories", PTBR: "Minhas últimas contribuições e repositórios"},
	"repos":         {EN: "Repositories", PTBR: "Repositórios"},
	"followers":     {EN: "Followers", PTBR: "Seguidores"},
	"stars":         {EN: "Total Stars", PTBR: "Estrelas Totais"},
	"forks":         {EN: "Total Forks", PTBR: "Forks Totais"},
	"recentRepos":   {EN: "Recent Repositories", PTBR: "Repositórios Recentes"},
	"viewProfile":   {EN: "View Profile", PTBR: "Ver Perfil"},
	"noDescription": {EN: "No description", PTBR: "Sem descrição"},
}

// githubLabels returns the GitHub section strings for locale.
func githubLabels(locale string) map[string]string {
	locale = normalizeLocale(locale)
	out := make(map[string]string, len(githubText))
	for k, t := range githubText {
		out[k] = t.In(locale)
	}
	return out
}
