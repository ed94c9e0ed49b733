package categorize

// Historical categorization tables. They disagree on labels and precedence;
// none of them is the canonical one, the operator picks.

var foldingKeywords = []string{
	"fold", "pliable", "pliant", "extensible", "expandable", "retractable",
	"rétractable", "telescopic", "télescopique", "drying rack", "clothes rack", "séchoir",
}

var capsuleKeywords = []string{
	"capsule", "pod", "cabin", "cabane", "spatial",
}

var smartKeywords = []string{
	"led", "projector", "projecteur", "curtain", "rideau",
	"zigbee", "z-wave", "matter", "tuya", "homekit",
	"alexa", "google home", "google assistant", "siri",
}

var frenchLabels = map[string]string{
	"Folding":            "Pliable",
	"Capsule":            "Capsule",
	"Smart Living Space": "Espace de vie intelligent",
	"Container":          "Conteneur",
	"Modulaire":          "Modulaire",
	"Villa":              "Villa",
	"New":                "Nouveauté",
}

func builtinProfiles() []Profile {
	return []Profile{
		{
			Name:        "container-v1",
			Description: "Folding, Capsule, Smart Living Space; everything else is Container",
			Default:     "Container",
			Rules: []Rule{
				{Label: "Folding", Keywords: foldingKeywords},
				{Label: "Capsule", Keywords: capsuleKeywords},
				{Label: "Smart Living Space", Keywords: smartKeywords},
			},
			Translations: map[string]map[string]string{"fr": frenchLabels},
		},
		{
			Name:        "modulaire-v2",
			Description: "container-v1 with the French Modulaire catch-all",
			Default:     "Modulaire",
			Rules: []Rule{
				{Label: "Folding", Keywords: foldingKeywords},
				{Label: "Capsule", Keywords: capsuleKeywords},
				{Label: "Smart Living Space", Keywords: smartKeywords},
			},
			Translations: map[string]map[string]string{"fr": frenchLabels},
		},
		{
			Name:        "villa-v3",
			Description: "Capsule before Folding, explicit Villa and Container, New catch-all",
			Default:     "New",
			Rules: []Rule{
				{Label: "Capsule", Keywords: capsuleKeywords},
				{Label: "Folding", Keywords: foldingKeywords},
				{Label: "Villa", Keywords: []string{"villa", "duplex", "two storey", "two-storey", "two story", "2 storey", "luxury"}},
				{Label: "Container", Keywords: []string{"container", "conteneur", "shipping", "20ft", "40ft"}},
			},
			Translations: map[string]map[string]string{"fr": frenchLabels},
		},
	}
}
