package summary

import (
	"strconv"
	"strings"
)

const yearPlaceholder = "{current_year}"

// clinicalPrompt is the fixed instruction template sent ahead of the
// flattened record. It is versioned with the code, not user supplied.
const clinicalPrompt = `
You will be provided with medical data of a patient in the form of a single string containing key-value pairs separated by commas.
This data includes sensitive and detailed clinical information such as medical history, medications, diagnoses, laboratory results, and patient demographics.
Please generate a comprehensive, accurate, and clinically relevant summary based strictly on the provided data.

Important considerations:
- DO NOT manipulate, infer beyond, or omit any patient information unless clearly redundant or explicitly unnecessary.
- Preserve the accuracy of all clinical details, including diagnoses, medication dosages, lab values, and test results.
- Pay close attention to demographic details such as age and gender, ensuring they are correctly captured.
- Ensure references to historical or clinical context align as dictated from the summary.
- Avoid speculative notes and conclusions unless strictly indicated.
- However, DO NOT infer or assume alcohol or drug use, mental health disorders, or metabolic conditions unless they are explicitly documented in the input data.
- The summary should be clear, factual, and aligned with the clinical and regulatory requirements of medical documentation.
- Avoid assumptions or generalizations not explicitly supported by the input data.
- Ensure medical terms are consistently and correctly used with appropriate clinical language.
- Retain all medical codes or references provided as part of the clinical data.
- Always ensure the current year is {current_year}, ensure that timelines and references reflect this context.

Your task:
- Provide a detailed and faithful Clinical Summary of the patient based on this input.
- Ensure the summary strictly adheres to the input data and carefully handles all critical and non-critical medical details without omission or error.
`

// BuildPrompt combines the clinical instruction template with the flattened
// record text, separated by a blank line. The year placeholder reflects the
// wall-clock year at call time.
func BuildPrompt(flattened string, year int) string {
	instructions := strings.ReplaceAll(clinicalPrompt, yearPlaceholder, strconv.Itoa(year))
	return strings.TrimSpace(instructions) + "\n\n" + strings.TrimSpace(flattened)
}
