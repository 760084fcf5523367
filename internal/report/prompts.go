package report

import (
	"fmt"

	"github.com/Skufu/CareNote/internal/llm"
)

const qaSystemPrompt = "You are a helpful medical explainer for patients."

const explanationTemplate = `Based on the following doctor's note, provide a patient-friendly English explanation in a **clear, bullet point list format**.

Requirements:
1. Present each point as a separate item for clarity.
2. Explain medical terms in simple language, 5-7 sentences long, e.g. instead of just "eGFR", write "eGFR (estimated Glomerular Filtration Rate), which indicates how well the kidneys are working".
3. Describe why each treatment or medication is suggested, 5-7 sentences long, including:
   - The name of the drug.
   - A simple explanation of what it is for (e.g. "Amlodipine: helps lower blood pressure to reduce strain on the heart").
   - Potential side effects the patient should watch for.
4. Keep the tone concise, clear, and patient-focused, suitable for direct display in a PDF.

Patient note: %s
`

const educationTemplate = `Based on the following doctor's note, provide patient-friendly English potential risks and guidance in a **clear, bullet point list format**.
Do not explain the doctor's note itself.

Requirements:
1. Present each point as a separate item and cite public health statistics from WHO, CDC or other open data. Reference the FDI World Dental Federation if the note is dental.
2. Highlight potential risks related to the patient's conditions that are not immediately obvious, 5-7 sentences long.
3. Include practical daily diet tips, lifestyle guidance or workout routines tailored to the patient's conditions, lab results and age, 5-7 sentences long.
4. Explain why certain treatments or lifestyle changes are recommended, 3-5 sentences long.
5. Keep the tone concise, clear, and patient-focused, suitable for direct display in a PDF.

Patient note: %s
`

const riskSummaryTemplate = `Based on the following doctor's note, generate below in English:

1. A short patient-friendly summary highlighting the main health risks.
2. A practical checklist of lifestyle or monitoring steps for the patient.

Doctor's note:
%s
`

const translateTemplate = `Translate the following text for the patient to Korean:

%s

The patient is one person, not a group, so avoid using '여러분'.
The response format must follow the English format.
Translate CDC into 미국질병통제예방센터(CDC), WHO into 세계보건기구(WHO), FDI into 세계치과의사연맹(FDI) if they are mentioned.`

func explanationPrompt(note string) []llm.Message {
	return []llm.Message{llm.User(fmt.Sprintf(explanationTemplate, note))}
}

func educationPrompt(note string) []llm.Message {
	return []llm.Message{llm.User(fmt.Sprintf(educationTemplate, note))}
}

func riskSummaryPrompt(note string) []llm.Message {
	return []llm.Message{llm.User(fmt.Sprintf(riskSummaryTemplate, note))}
}

func translatePrompt(text string) []llm.Message {
	return []llm.Message{llm.User(fmt.Sprintf(translateTemplate, text))}
}

func questionPrompt(note, question string) []llm.Message {
	return []llm.Message{
		llm.System(qaSystemPrompt),
		llm.User("Doctor's note: " + note),
		llm.User("Patient question: " + question),
	}
}
