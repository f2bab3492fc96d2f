package i18n

// messages maps language code to translated strings.
var messages = map[string]map[string]string{
	"fr": {
		"balance.title":             "Solde",
		"balance.total":             "Total des revenus",
		"balance.current":           "Disponible",
		"categories.title":          "Catégories",
		"transactions.title":        "Transactions",
		"transactions.empty":        "Aucune transaction",
		"tx.income":                 "Revenu",
		"tx.expense":                "Dépense",
		"advisor.title":             "Conseiller budgétaire",
		"advisor.income_prompt":     "Quel est votre budget mensuel ?",
		"advisor.rent_prompt":       "Quel est votre loyer mensuel ?",
		"advisor.daily_prompt":      "Combien dépensez-vous par jour ?",
		"advisor.strategy_prompt":   "Quel est votre objectif d'épargne ?",
		"advisor.result_title":      "Votre plan budgétaire",
		"advisor.fixed_charges":     "Charges fixes",
		"advisor.savings":           "Épargne",
		"advisor.available":         "Disponible pour dépenser",
		"advisor.daily_budget":      "Budget quotidien",
		"advisor.weekly_budget":     "Budget hebdomadaire",
		"advisor.biweekly_budget":   "Budget bi-hebdomadaire",
		"advisor.monthly_budget":    "Budget mensuel",
		"advisor.weekly_spending":   "Dépenses hebdomadaires actuelles",
		"advisor.biweekly_spending": "Dépenses bi-hebdomadaires actuelles",
		"advisor.saved":             "Plan sauvegardé",
		"advisor.no_plan":           "Aucun plan enregistré",
		"strategy.conservative":     "Sécurité maximale (30% d'épargne)",
		"strategy.balanced":         "Juste milieu (20% d'épargne)",
		"strategy.aggressive":       "Investissement (10% d'épargne)",
		"period.day":                "Aujourd'hui",
		"period.two_weeks":          "2 semaines",
		"period.month":              "Ce mois",
		"status.spent":              "Dépensé",
		"status.target":             "Objectif",
		"status.remaining":          "Restant",
		"status.over":               "Budget dépassé",
		"settings.currency":         "Devise",
		"settings.language":         "Langue",
	},
	"en": {
		"balance.title":             "Balance",
		"balance.total":             "Total income",
		"balance.current":           "Available",
		"categories.title":          "Categories",
		"transactions.title":        "Transactions",
		"transactions.empty":        "No transactions",
		"tx.income":                 "Income",
		"tx.expense":                "Expense",
		"advisor.title":             "Budget Advisor",
		"advisor.income_prompt":     "What is your monthly budget?",
		"advisor.rent_prompt":       "What is your monthly rent?",
		"advisor.daily_prompt":      "How much do you spend per day?",
		"advisor.strategy_prompt":   "What is your savings goal?",
		"advisor.result_title":      "Your budget plan",
		"advisor.fixed_charges":     "Fixed charges",
		"advisor.savings":           "Savings",
		"advisor.available":         "Available for spending",
		"advisor.daily_budget":      "Daily budget",
		"advisor.weekly_budget":     "Weekly budget",
		"advisor.biweekly_budget":   "Bi-weekly budget",
		"advisor.monthly_budget":    "Monthly budget",
		"advisor.weekly_spending":   "Current weekly spending",
		"advisor.biweekly_spending": "Current bi-weekly spending",
		"advisor.saved":             "Plan saved",
		"advisor.no_plan":           "No saved plan",
		"strategy.conservative":     "Maximum security (30% savings)",
		"strategy.balanced":         "Balanced (20% savings)",
		"strategy.aggressive":       "Investment (10% savings)",
		"period.day":                "Today",
		"period.two_weeks":          "2 weeks",
		"period.month":              "This month",
		"status.spent":              "Spent",
		"status.target":             "Target",
		"status.remaining":          "Remaining",
		"status.over":               "Over budget",
		"settings.currency":         "Currency",
		"settings.language":         "Language",
	},
	"es": {
		"balance.title":             "Saldo",
		"balance.total":             "Ingresos totales",
		"balance.current":           "Disponible",
		"categories.title":          "Categorías",
		"transactions.title":        "Transacciones",
		"transactions.empty":        "Sin transacciones",
		"tx.income":                 "Ingreso",
		"tx.expense":                "Gasto",
		"advisor.title":             "Asesor presupuestario",
		"advisor.income_prompt":     "¿Cuál es tu presupuesto mensual?",
		"advisor.rent_prompt":       "¿Cuál es tu alquiler mensual?",
		"advisor.daily_prompt":      "¿Cuánto gastas por día?",
		"advisor.strategy_prompt":   "¿Cuál es tu objetivo de ahorro?",
		"advisor.result_title":      "Tu plan presupuestario",
		"advisor.fixed_charges":     "Cargos fijos",
		"advisor.savings":           "Ahorro",
		"advisor.available":         "Disponible para gastar",
		"advisor.daily_budget":      "Presupuesto diario",
		"advisor.weekly_budget":     "Presupuesto semanal",
		"advisor.biweekly_budget":   "Presupuesto quincenal",
		"advisor.monthly_budget":    "Presupuesto mensual",
		"advisor.weekly_spending":   "Gasto semanal actual",
		"advisor.biweekly_spending": "Gasto quincenal actual",
		"advisor.saved":             "Plan guardado",
		"advisor.no_plan":           "No hay plan guardado",
		"strategy.conservative":     "Máxima seguridad (30% ahorro)",
		"strategy.balanced":         "Equilibrado (20% ahorro)",
		"strategy.aggressive":       "Inversión (10% ahorro)",
		"period.day":                "Hoy",
		"period.two_weeks":          "2 semanas",
		"period.month":              "Este mes",
		"status.spent":              "Gastado",
		"status.target":             "Objetivo",
		"status.remaining":          "Restante",
		"status.over":               "Presupuesto superado",
		"settings.currency":         "Moneda",
		"settings.language":         "Idioma",
	},
	"pt": {
		"balance.title":             "Saldo",
		"balance.total":             "Receita total",
		"balance.current":           "Disponível",
		"categories.title":          "Categorias",
		"transactions.title":        "Transações",
		"transactions.empty":        "Nenhuma transação",
		"tx.income":                 "Receita",
		"tx.expense":                "Despesa",
		"advisor.title":             "Consultor de orçamento",
		"advisor.income_prompt":     "Qual é o seu orçamento mensal?",
		"advisor.rent_prompt":       "Qual é o seu aluguel mensal?",
		"advisor.daily_prompt":      "Quanto você gasta por dia?",
		"advisor.strategy_prompt":   "Qual é a sua meta de poupança?",
		"advisor.result_title":      "Seu plano de orçamento",
		"advisor.fixed_charges":     "Despesas fixas",
		"advisor.savings":           "Poupança",
		"advisor.available":         "Disponível para gastar",
		"advisor.daily_budget":      "Orçamento diário",
		"advisor.weekly_budget":     "Orçamento semanal",
		"advisor.biweekly_budget":   "Orçamento quinzenal",
		"advisor.monthly_budget":    "Orçamento mensal",
		"advisor.weekly_spending":   "Gasto semanal atual",
		"advisor.biweekly_spending": "Gasto quinzenal atual",
		"advisor.saved":             "Plano salvo",
		"advisor.no_plan":           "Nenhum plano salvo",
		"strategy.conservative":     "Segurança máxima (30% de poupança)",
		"strategy.balanced":         "Equilibrado (20% de poupança)",
		"strategy.aggressive":       "Investimento (10% de poupança)",
		"period.day":                "Hoje",
		"period.two_weeks":          "2 semanas",
		"period.month":              "Este mês",
		"status.spent":              "Gasto",
		"status.target":             "Meta",
		"status.remaining":          "Restante",
		"status.over":               "Orçamento excedido",
		"settings.currency":         "Moeda",
		"settings.language":         "Idioma",
	},
	"zh": {
		"balance.title":             "余额",
		"balance.total":             "总收入",
		"balance.current":           "可用",
		"categories.title":          "类别",
		"transactions.title":        "交易",
		"transactions.empty":        "暂无交易",
		"tx.income":                 "收入",
		"tx.expense":                "支出",
		"advisor.title":             "预算顾问",
		"advisor.income_prompt":     "您的月预算是多少？",
		"advisor.rent_prompt":       "您的月租金是多少？",
		"advisor.daily_prompt":      "您每天花多少钱？",
		"advisor.strategy_prompt":   "您的储蓄目标是什么？",
		"advisor.result_title":      "您的预算计划",
		"advisor.fixed_charges":     "固定费用",
		"advisor.savings":           "储蓄",
		"advisor.available":         "可用于支出",
		"advisor.daily_budget":      "每日预算",
		"advisor.weekly_budget":     "每周预算",
		"advisor.biweekly_budget":   "双周预算",
		"advisor.monthly_budget":    "每月预算",
		"advisor.weekly_spending":   "当前每周支出",
		"advisor.biweekly_spending": "当前双周支出",
		"advisor.saved":             "计划已保存",
		"advisor.no_plan":           "没有保存的计划",
		"strategy.conservative":     "最大安全性（30%储蓄）",
		"strategy.balanced":         "平衡（20%储蓄）",
		"strategy.aggressive":       "投资（10%储蓄）",
		"period.day":                "今天",
		"period.two_weeks":          "两周",
		"period.month":              "本月",
		"status.spent":              "已花费",
		"status.target":             "目标",
		"status.remaining":          "剩余",
		"status.over":               "超出预算",
		"settings.currency":         "货币",
		"settings.language":         "语言",
	},
	"ja": {
		"balance.title":             "残高",
		"balance.total":             "総収入",
		"balance.current":           "利用可能",
		"categories.title":          "カテゴリ",
		"transactions.title":        "取引",
		"transactions.empty":        "取引はありません",
		"tx.income":                 "収入",
		"tx.expense":                "支出",
		"advisor.title":             "予算アドバイザー",
		"advisor.income_prompt":     "月間予算はいくらですか？",
		"advisor.rent_prompt":       "月間家賃はいくらですか？",
		"advisor.daily_prompt":      "1日にいくら使いますか？",
		"advisor.strategy_prompt":   "貯蓄目標は何ですか？",
		"advisor.result_title":      "あなたの予算計画",
		"advisor.fixed_charges":     "固定費",
		"advisor.savings":           "貯蓄",
		"advisor.available":         "支出可能額",
		"advisor.daily_budget":      "日次予算",
		"advisor.weekly_budget":     "週次予算",
		"advisor.biweekly_budget":   "隔週予算",
		"advisor.monthly_budget":    "月次予算",
		"advisor.weekly_spending":   "現在の週間支出",
		"advisor.biweekly_spending": "現在の隔週支出",
		"advisor.saved":             "計画を保存しました",
		"advisor.no_plan":           "保存された計画はありません",
		"strategy.conservative":     "最大セキュリティ（30%貯蓄）",
		"strategy.balanced":         "バランス（20%貯蓄）",
		"strategy.aggressive":       "投資（10%貯蓄）",
		"period.day":                "今日",
		"period.two_weeks":          "2週間",
		"period.month":              "今月",
		"status.spent":              "支出",
		"status.target":             "目標",
		"status.remaining":          "残り",
		"status.over":               "予算超過",
		"settings.currency":         "通貨",
		"settings.language":         "言語",
	},
}
