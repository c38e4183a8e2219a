package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to Portuguese labels shown to operators
var FieldLabels = map[string]string{
	// Candidate fields
	"FullName":            "Nome completo",
	"Email":               "E-mail",
	"Phone":               "Telefone",
	"BirthDate":           "Data de nascimento",
	"PhotoURL":            "Foto",
	"City":                "Cidade",
	"State":               "Estado",
	"InterestAreas":       "Áreas de interesse",
	"EducationLevel":      "Escolaridade",
	"EducationBackground": "Formação",
	"Institution":         "Instituição",
	"ExperienceSummary":   "Experiência",
	"Bio":                 "Bio",
	"ResumeURL":           "Currículo",
	"PortfolioURL":        "Portfólio",
	"HasDriverLicense":    "CNH",
	"PipelineStage":       "Etapa",
	"Status":              "Status",
	"ManagerFeedback":     "Feedback do gestor",
	"InterviewNotes":      "Anotações da entrevista",
	"TargetStage":         "Etapa de destino",

	// Job fields
	"Title":       "Título",
	"Area":        "Área",
	"Type":        "Tipo de contrato",
	"Description": "Descrição",

	// Auth fields
	"IDToken": "Token de identidade",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins the formatted errors into one line for the response envelope.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s: campo obrigatório", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: mínimo de %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: mínimo %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s: máximo de %s caracteres", label, param)
		}
		return fmt.Sprintf("%s: máximo %s", label, param)

	case "email":
		return fmt.Sprintf("%s: formato de e-mail inválido", label)

	case "url":
		return fmt.Sprintf("%s: URL inválida", label)

	case "oneof":
		return fmt.Sprintf("%s: deve ser um de: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "pipeline_stage":
		return fmt.Sprintf("%s: etapa desconhecida", label)

	case "candidate_status":
		return fmt.Sprintf("%s: status desconhecido", label)

	case "job_type":
		return fmt.Sprintf("%s: deve ser CLT, PJ ou Estágio", label)

	case "job_status":
		return fmt.Sprintf("%s: deve ser Aberta ou Fechada", label)

	case "uf":
		return fmt.Sprintf("%s: sigla de estado inválida", label)

	case "no_emoji":
		return fmt.Sprintf("%s: não pode conter emoji", label)

	default:
		return fmt.Sprintf("%s: validação falhou (%s)", label, e.Tag())
	}
}

func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
