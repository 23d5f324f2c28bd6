package service

const welcomeText = `🏦 *Assistente Financeiro Inteligente*

Olá! Sou seu assistente financeiro pessoal, especializado em:

💰 *Planejamento Financeiro*
📊 *Análise de Investimentos*
📈 *Controle de Gastos*
🎯 *Educação Financeira*
💡 *Estratégias de Economia*

*Comandos Disponíveis:*
• /ajuda - Lista de comandos
• /calculadora - Ferramentas de cálculo
• /dicas - Dicas financeiras rápidas

*Como usar:*
Envie suas dúvidas financeiras em linguagem natural. Exemplo:
"Como investir R$ 1000 com baixo risco?"

Estou aqui para ajudar! 🚀`

const helpText = `📋 *Menu de Ajuda - Assistente Financeiro*

*🔧 Comandos:*
• /inicio - Mensagem de boas-vindas
• /ajuda - Este menu
• /calculadora - Calculadoras disponíveis
• /dicas - Dica financeira

*🧮 Calculadoras:*
• /juros [capital] [taxa] [tempo] - Juros simples
• /compostos [capital] [taxa] [tempo] - Juros compostos
• /financiamento [valor] [taxa anual] [parcelas]

*💬 Exemplos:*
• "Como investir em renda fixa?"
• /juros 1000 5 12
• /compostos 1000 1,5 12
• /financiamento 100000 12 60

No financiamento a taxa é *anual*: 12 equivale a 1% ao mês.`

const calculatorText = `🧮 *Calculadoras Financeiras*

• /juros 1000 5 12 - Juros simples
• /compostos 1000 1 12 - Juros compostos
• /financiamento 100000 12 60 - Prestação fixa
• /sac 120000 12 10 - Tabela SAC
• /price 120000 12 10 - Tabela Price
• /inflacao 10000 4 10 - Perda de poder de compra
• /regra72 8 - Tempo para dobrar
• /aposentadoria 30 60 5000 10 - Aporte mensal necessário
• /vpl 10000 10 3000 4000 5000 - VPL e TIR

Taxas em %. Financiamento, SAC e Price usam taxa anual. Use vírgula ou ponto nos decimais. 🤔`

var tips = []string{
	"💰 *Regra 50-30-20:* 50% necessidades, 30% desejos, 20% poupança",
	"📈 *Diversificação:* Nunca coloque todos os ovos na mesma cesta",
	"🎯 *Reserva de emergência:* 6 meses de gastos essenciais",
	"📊 *Renda fixa primeiro:* Construa base sólida antes de arriscar",
	"💡 *Educação financeira:* Invista em conhecimento primeiro",
	"⚡ *Automatize:* Configure investimentos automáticos",
	"🔍 *Compare sempre:* Taxas, tarifas e condições",
	"📱 *Controle gastos:* Use apps para monitorar despesas",
}
