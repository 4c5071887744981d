package http

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"empowerpredict/ml"
)

type numericField struct {
	Name        string
	Param       string
	Min         int
	Max         int
	Placeholder string
}

type categoryField struct {
	Name    string
	Options []string
}

type formData struct {
	NumericFields  []numericField
	CategoryFields []categoryField
}

func numericFormFields() []numericField {
	return []numericField{
		{
			Name:        ml.FieldBusinessOwnership,
			Param:       "business_ownership",
			Min:         0,
			Max:         -1,
			Placeholder: "Enter the total number of businesses owned in the target group.",
		},
		{
			Name:        ml.FieldEmploymentRates + " (%)",
			Param:       "employment_rates",
			Min:         0,
			Max:         100,
			Placeholder: "Specify the employment rate as a percentage (0-100%).",
		},
		{
			Name:        ml.FieldWomenInLeadership,
			Param:       "women_in_leadership",
			Min:         0,
			Max:         -1,
			Placeholder: "Provide the count of women in leadership positions.",
		},
		{
			Name:        ml.FieldTariffRates + " (%)",
			Param:       "tariff_rates",
			Min:         0,
			Max:         100,
			Placeholder: "Input the tariff rates as a percentage (0-100%).",
		},
	}
}

func handleForm(w http.ResponseWriter, r *http.Request) {
	if pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, "pipeline not initialized")
		return
	}

	vocabulary := pipeline.Vocabulary()
	data := formData{NumericFields: numericFormFields()}
	for _, feature := range vocabulary.Features() {
		values, _ := vocabulary.Values(feature)
		data.CategoryFields = append(data.CategoryFields, categoryField{Name: feature, Options: values})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := formTemplate.Execute(w, data); err != nil {
		logger.Warn("failed to render form", zap.Error(err))
	}
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Women Empowerment Predictor</title>
<style>
body { font-family: sans-serif; max-width: 640px; margin: 2em auto; padding: 0 1em; }
label { display: block; margin-top: 1em; font-weight: bold; }
input, select { width: 100%; padding: 0.4em; margin-top: 0.25em; }
button { margin-top: 1.5em; padding: 0.6em 1.5em; }
#result { margin-top: 1.5em; font-size: 1.2em; }
.error { color: #b00; }
</style>
</head>
<body>
<h1>Women Empowerment Predictor</h1>
<p>Enter the details to predict women empowerment status.</p>
<form id="predict-form">
{{range .NumericFields}}
<label>{{.Name}}
<input type="number" name="{{.Param}}" min="{{.Min}}"{{if ge .Max 0}} max="{{.Max}}"{{end}} step="any" placeholder="{{.Placeholder}}">
</label>
{{end}}
{{range .CategoryFields}}
<label>{{.Name}}
<select name="{{.Name}}">
<option value="">Select {{.Name}}</option>
{{range .Options}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
</label>
{{end}}
<button type="submit">Run Prediction</button>
</form>
<div id="result"></div>
<script>
document.getElementById("predict-form").addEventListener("submit", async function (ev) {
	ev.preventDefault();
	const form = ev.target;
	const body = { categorical: {} };
	for (const input of form.querySelectorAll("input")) {
		body[input.name] = input.value === "" ? null : Number(input.value);
	}
	for (const select of form.querySelectorAll("select")) {
		body.categorical[select.name] = select.value;
	}
	const result = document.getElementById("result");
	result.className = "";
	result.textContent = "Running prediction...";
	try {
		const resp = await fetch("/api/predict", {
			method: "POST",
			headers: { "Content-Type": "application/json" },
			body: JSON.stringify(body)
		});
		const payload = await resp.json();
		if (!resp.ok) {
			result.className = "error";
			result.textContent = payload.error || "Prediction failed.";
			return;
		}
		result.textContent = "Prediction: Women are " + payload.label + ".";
	} catch (err) {
		result.className = "error";
		result.textContent = "Prediction failed: " + err;
	}
});
</script>
</body>
</html>
`))
