package assistant

import (
	"github.com/mercadinho/gestao/internal"
)

// greetings are matched against the trimmed, lower-cased message. A match
// short-circuits the upstream call entirely.
var greetings = map[string]struct{}{
	"oi":        {},
	"ola":       {},
	"olá":       {},
	"bom dia":   {},
	"boa tarde": {},
	"boa noite": {},
	"eai":       {},
	"tudo bem?": {},
}

const greetingReply = "Olá! Eu sou seu assistente de gestão e contabilidade. Como posso te ajudar hoje?"

const systemInstruction = "Você é um assistente especialista em contabilidade e gestão empresarial no Brasil. " +
	"Utilize de linguagem clara e acessível, evitando jargões técnicos. " +
	"Foque-se nas leis e regulamentações brasileiras. " +
	"Retorne respostas detalhadas e alinhadas às necessidades do usuário. " +
	"Haja como um consultor e administrador experiente de pequenas, médias e grandes empresas. " +
	"Considere realizar cálculos financeiros e contábeis como: fluxo de caixa, margem de lucro, ponto de equilíbrio, análise de custos, entre outros. " +
	"Haja o mais próximo de um ser humano possível. " +
	"Retorne a resposta em português, utilizando de parágrafos e listas, mantenha o espaçamento entre as linhas para que não fique um bloco só. " +
	"Responda de forma clara, prática e acessível."

var (
	ErrMessageMissing = internal.NewValidationFieldError("message", "Mensagem não fornecida", internal.ErrCodeMissingField)
	ErrNotConfigured  = internal.NewConfigError("A chave da API do assistente não está configurada no servidor.", internal.ErrCodeAssistantNotConfigured)
	ErrUpstream       = internal.NewUpstreamError("Ocorreu um erro interno no assistente.", nil)
)
