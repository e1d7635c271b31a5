package templates

import "github.com/goliatone/go-sitedraft/internal/domain"

// industrySeed carries the per-industry copy and styling used to stamp out the
// builtin Russian-language templates.
type industrySeed struct {
	templateID  string
	name        string
	description string
	titleSuffix string
	heroTitle   string
	heroSub     string
	features    [3][2]string
	aboutBody   string
	ctaLabel    string
	palette     Palette
	radius      string
	spacing     string
	keywords    []string
}

var builtinSeeds = map[string]industrySeed{
	domain.IndustryTech: {
		templateID:  "tech",
		name:        "Технологии",
		description: "Шаблон для IT-компаний и продуктовых команд",
		titleSuffix: "IT-услуги для роста бизнеса",
		heroTitle:   "{{brandName}} — IT-услуги для роста бизнеса",
		heroSub:     "Разработка, интеграция и поддержка цифровых продуктов для компании {{brandName}}",
		features: [3][2]string{
			{"Разработка под ключ", "Веб-приложения, мобильные клиенты и интеграции"},
			{"Облачная инфраструктура", "Миграция, мониторинг и сопровождение 24/7"},
			{"Техническая экспертиза", "Аудит архитектуры и консультации по развитию"},
		},
		aboutBody: "{{brandName}} работает в сфере «{{industryLabel}}» и помогает бизнесу расти за счёт современных технологий.",
		ctaLabel:  "Обсудить проект",
		palette: Palette{
			Primary:    "#2563eb",
			Accent:     "#7c3aed",
			Background: "#0f172a",
			Surface:    "#1e293b",
			Text:       "#f8fafc",
			MutedText:  "#94a3b8",
		},
		radius:   "md",
		spacing:  "normal",
		keywords: []string{"разработка", "it-услуги", "интеграция"},
	},
	domain.IndustryFinance: {
		templateID:  "finance",
		name:        "Финансы",
		description: "Шаблон для финансовых и консалтинговых организаций",
		titleSuffix: "финансовые решения для вашего бизнеса",
		heroTitle:   "{{brandName}} — финансовые решения для вашего бизнеса",
		heroSub:     "Бухгалтерия, аудит и финансовое планирование от {{brandName}}",
		features: [3][2]string{
			{"Бухгалтерское сопровождение", "Полный цикл учёта и отчётности"},
			{"Налоговое планирование", "Законная оптимизация налоговой нагрузки"},
			{"Финансовый аудит", "Независимая проверка и рекомендации"},
		},
		aboutBody: "{{brandName}} — команда специалистов в сфере «{{industryLabel}}» с многолетним опытом.",
		ctaLabel:  "Получить консультацию",
		palette: Palette{
			Primary:    "#047857",
			Accent:     "#b45309",
			Background: "#ffffff",
			Surface:    "#f0fdf4",
			Text:       "#064e3b",
			MutedText:  "#6b7280",
		},
		radius:   "sm",
		spacing:  "compact",
		keywords: []string{"финансы", "бухгалтерия", "аудит"},
	},
	domain.IndustryHealthcare: {
		templateID:  "healthcare",
		name:        "Медицина",
		description: "Шаблон для клиник и медицинских центров",
		titleSuffix: "забота о вашем здоровье",
		heroTitle:   "{{brandName}} — забота о вашем здоровье",
		heroSub:     "Современная диагностика и внимательные врачи в {{brandName}}",
		features: [3][2]string{
			{"Приём специалистов", "Консультации врачей более 20 направлений"},
			{"Диагностика", "Современное оборудование и быстрые результаты"},
			{"Программы здоровья", "Годовые программы наблюдения для всей семьи"},
		},
		aboutBody: "{{brandName}} — медицинский центр в сфере «{{industryLabel}}», где пациент всегда на первом месте.",
		ctaLabel:  "Записаться на приём",
		palette: Palette{
			Primary:    "#0891b2",
			Accent:     "#22c55e",
			Background: "#ffffff",
			Surface:    "#ecfeff",
			Text:       "#164e63",
			MutedText:  "#64748b",
		},
		radius:   "lg",
		spacing:  "relaxed",
		keywords: []string{"клиника", "врачи", "диагностика"},
	},
	domain.IndustryRetail: {
		templateID:  "retail",
		name:        "Торговля",
		description: "Шаблон для магазинов и торговых компаний",
		titleSuffix: "товары, которым доверяют",
		heroTitle:   "{{brandName}} — товары, которым доверяют",
		heroSub:     "Широкий ассортимент и честные цены в {{brandName}}",
		features: [3][2]string{
			{"Ассортимент", "Тысячи позиций в наличии и под заказ"},
			{"Доставка", "Быстрая доставка по городу и области"},
			{"Гарантия", "Официальная гарантия на все товары"},
		},
		aboutBody: "{{brandName}} работает в сфере «{{industryLabel}}» и дорожит каждым покупателем.",
		ctaLabel:  "Перейти в каталог",
		palette: Palette{
			Primary:    "#ea580c",
			Accent:     "#ca8a04",
			Background: "#fffbeb",
			Surface:    "#ffffff",
			Text:       "#431407",
			MutedText:  "#78716c",
		},
		radius:   "md",
		spacing:  "normal",
		keywords: []string{"магазин", "каталог", "доставка"},
	},
	domain.IndustryEducation: {
		templateID:  "education",
		name:        "Образование",
		description: "Шаблон для школ, курсов и образовательных проектов",
		titleSuffix: "знания, которые работают",
		heroTitle:   "{{brandName}} — знания, которые работают",
		heroSub:     "Практические курсы и сильные преподаватели в {{brandName}}",
		features: [3][2]string{
			{"Практика с первого дня", "Учебные проекты вместо сухой теории"},
			{"Наставники", "Поддержка кураторов на всём пути обучения"},
			{"Сертификаты", "Документы, которые ценят работодатели"},
		},
		aboutBody: "{{brandName}} — образовательный проект в сфере «{{industryLabel}}».",
		ctaLabel:  "Выбрать курс",
		palette: Palette{
			Primary:    "#4f46e5",
			Accent:     "#db2777",
			Background: "#ffffff",
			Surface:    "#eef2ff",
			Text:       "#1e1b4b",
			MutedText:  "#6b7280",
		},
		radius:   "lg",
		spacing:  "normal",
		keywords: []string{"курсы", "обучение", "образование"},
	},
	domain.IndustryRealEstate: {
		templateID:  "real-estate",
		name:        "Недвижимость",
		description: "Шаблон для агентств и застройщиков",
		titleSuffix: "недвижимость без лишних хлопот",
		heroTitle:   "{{brandName}} — недвижимость без лишних хлопот",
		heroSub:     "Покупка, продажа и аренда с {{brandName}}",
		features: [3][2]string{
			{"Проверенные объекты", "Юридическая чистота каждой сделки"},
			{"Сопровождение", "Персональный агент на всех этапах"},
			{"Ипотека", "Помощь в одобрении и выборе программы"},
		},
		aboutBody: "{{brandName}} помогает клиентам в сфере «{{industryLabel}}» находить лучшие варианты.",
		ctaLabel:  "Подобрать объект",
		palette: Palette{
			Primary:    "#0f766e",
			Accent:     "#a16207",
			Background: "#fafaf9",
			Surface:    "#ffffff",
			Text:       "#1c1917",
			MutedText:  "#78716c",
		},
		radius:   "sm",
		spacing:  "normal",
		keywords: []string{"недвижимость", "квартиры", "аренда"},
	},
	domain.IndustryConsulting: {
		templateID:  "consulting",
		name:        "Консалтинг",
		description: "Шаблон для консалтинговых бюро и экспертов",
		titleSuffix: "экспертиза для вашего роста",
		heroTitle:   "{{brandName}} — экспертиза для вашего роста",
		heroSub:     "Стратегия, процессы и управление от команды {{brandName}}",
		features: [3][2]string{
			{"Стратегия", "Диагностика бизнеса и план развития"},
			{"Процессы", "Наведение порядка в операционке"},
			{"Команды", "Подбор, оценка и развитие руководителей"},
		},
		aboutBody: "{{brandName}} консультирует компании в сфере «{{industryLabel}}».",
		ctaLabel:  "Запросить аудит",
		palette: Palette{
			Primary:    "#334155",
			Accent:     "#0ea5e9",
			Background: "#f8fafc",
			Surface:    "#ffffff",
			Text:       "#0f172a",
			MutedText:  "#64748b",
		},
		radius:   "none",
		spacing:  "compact",
		keywords: []string{"консалтинг", "стратегия", "управление"},
	},
	domain.IndustryRestaurant: {
		templateID:  "restaurant",
		name:        "Рестораны",
		description: "Шаблон для кафе, ресторанов и доставки еды",
		titleSuffix: "вкус, который запоминается",
		heroTitle:   "{{brandName}} — вкус, который запоминается",
		heroSub:     "Сезонное меню и уютная атмосфера в {{brandName}}",
		features: [3][2]string{
			{"Авторское меню", "Блюда от шефа из сезонных продуктов"},
			{"Банкеты", "Праздники и события под ключ"},
			{"Доставка", "Горячие блюда у вас дома за 60 минут"},
		},
		aboutBody: "{{brandName}} — заведение в сфере «{{industryLabel}}», куда хочется вернуться.",
		ctaLabel:  "Забронировать стол",
		palette: Palette{
			Primary:    "#b91c1c",
			Accent:     "#d97706",
			Background: "#1c1917",
			Surface:    "#292524",
			Text:       "#fafaf9",
			MutedText:  "#a8a29e",
		},
		radius:   "full",
		spacing:  "relaxed",
		keywords: []string{"ресторан", "меню", "доставка еды"},
	},
	domain.IndustryOther: {
		templateID:  DefaultTemplateID,
		name:        "Универсальный",
		description: "Универсальный шаблон для любого бизнеса",
		titleSuffix: "официальный сайт",
		heroTitle:   "{{brandName}} — официальный сайт",
		heroSub:     "Добро пожаловать на сайт компании {{brandName}}",
		features: [3][2]string{
			{"О компании", "Кто мы и чем можем быть полезны"},
			{"Услуги", "Что мы предлагаем нашим клиентам"},
			{"Контакты", "Как с нами связаться"},
		},
		aboutBody: "{{brandName}} работает в сфере «{{industryLabel}}».",
		ctaLabel:  "Связаться с нами",
		palette: Palette{
			Primary:    "#1d4ed8",
			Accent:     "#0d9488",
			Background: "#ffffff",
			Surface:    "#f1f5f9",
			Text:       "#111827",
			MutedText:  "#6b7280",
		},
		radius:   "md",
		spacing:  "normal",
		keywords: []string{"компания", "услуги", "контакты"},
	},
}

// Builtin constructs the registry with the compiled-in Russian templates. It
// panics only on a programming error in the seed data, which the registry
// tests catch.
func Builtin(opts ...RegistryOption) *MemoryRegistry {
	defs := make([]*TemplateDefinition, 0, len(builtinSeeds))
	index := make(map[string]string, len(domain.IndustryCodes()))
	for code, seed := range builtinSeeds {
		defs = append(defs, buildDefinition(seed))
		index[code] = seed.templateID
	}

	registry, err := NewMemoryRegistry(defs, index, opts...)
	if err != nil {
		panic("templates: builtin registry failed validation: " + err.Error())
	}
	return registry
}

func buildDefinition(seed industrySeed) *TemplateDefinition {
	features := make([]any, 0, len(seed.features))
	for _, pair := range seed.features {
		features = append(features, map[string]any{
			"title": pair[0],
			"text":  pair[1],
		})
	}

	return &TemplateDefinition{
		TemplateID:      seed.templateID,
		TemplateVersion: 1,
		Name:            seed.name,
		Description:     seed.description,
		TitleSuffix:     seed.titleSuffix,
		Language:        "ru",
		Theme: ThemeDefaults{
			ThemeID: seed.templateID + "-default",
			Palette: seed.palette,
			Typography: Typography{
				FontFamily: "Inter, system-ui, sans-serif",
				Scale:      "1.250",
			},
			Radius:  seed.radius,
			Spacing: seed.spacing,
		},
		SEO: SEODefaults{
			Keywords: append([]string(nil), seed.keywords...),
		},
		Routing: RoutingDefaults{
			BasePath:      "/",
			TrailingSlash: false,
		},
		Pages: []PageTemplate{
			{
				ID:    "home",
				Path:  "/",
				Title: seed.heroTitle,
				Sections: []SectionTemplate{
					{
						ID:   "hero",
						Type: "hero",
						Props: map[string]any{
							"title":       seed.heroTitle,
							"subtitle":    seed.heroSub,
							"ctaLabel":    seed.ctaLabel,
							"logoAssetId": "{{logoAssetId}}",
							"logoUrl":     "{{logoUrl}}",
						},
					},
					{
						ID:   "features",
						Type: "features",
						Props: map[string]any{
							"heading": "Почему выбирают {{brandName}}",
							"items":   features,
						},
					},
					{
						ID:   "about",
						Type: "about",
						Props: map[string]any{
							"heading": "О компании",
							"body":    seed.aboutBody,
						},
					},
					{
						ID:   "contact",
						Type: "contact",
						Props: map[string]any{
							"heading":  "Свяжитесь с нами",
							"ctaLabel": seed.ctaLabel,
							"email":    "hello@{{slug}}.example",
						},
					},
					{
						ID:   "footer",
						Type: "footer",
						Props: map[string]any{
							"text": "© {{brandName}}. Все права защищены.",
						},
					},
				},
			},
		},
		Publishing: PublishingDefaults{
			Target: "static",
			Output: PublishingOutput{
				Format:      "single-page",
				EntryPageID: "home",
			},
			Constraints: PublishingConstraints{
				MaxPages:           10,
				MaxSectionsPerPage: 20,
			},
		},
	}
}
