package taxonomy

// categories is the municipal complaint taxonomy. Order matters: it drives
// dropdown ordering on the client and the first sub-category doubles as the
// fallback when the classifier names an unknown one.
var categories = []Category{
	{
		ID:    "pmc-bhavan",
		Label: "PMC Bhavan",
		SubCategories: []SubCategory{
			{ID: "other-pmc", Label: "Other"},
			{ID: "water-leakage-building", Label: "Water pipe leakage in building premises"},
			{ID: "compound-gate-repair", Label: "About Compound wall and gate repairing"},
			{ID: "building-leakage", Label: "Leakages in building"},
			{ID: "water-clogging-building", Label: "Water clogging in building premises"},
			{ID: "building-repair", Label: "Repairing works of building"},
			{ID: "structural-audit", Label: "About Structural audit"},
			{ID: "statue-repair", Label: "Repairing works related to statues"},
		},
	},
	{
		ID:    "birth-death",
		Label: "Birth And Death",
		SubCategories: []SubCategory{
			{ID: "certificate-not-issued", Label: "Birth/Death Certificate not issued"},
			{ID: "certificate-correction", Label: "Correction in Birth/Death Certificate"},
			{ID: "other-birth-death", Label: "Others (Birth-Death)"},
		},
	},
	{
		ID:            "building-permission",
		Label:         "Building Permission",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "flats-number", Label: "Number of flats in a building"},
			{ID: "certified-copy", Label: "Applied for certified copy but no response"},
			{ID: "unauthorized-construction", Label: "Unauthorised construction/development"},
			{ID: "dp-plan-demand", Label: "DP plan Demand"},
			{ID: "unauthorized-alteration", Label: "Unauthorised alteration/renovation of building"},
			{ID: "regularisation", Label: "Regularisation of plots/constructions"},
			{ID: "plan-not-sanctioned", Label: "Plan submitted but not sanctioned"},
			{ID: "flat-addition", Label: "Flat addition and alteration"},
			{ID: "other-building", Label: "Other (Building Permission)"},
		},
	},
	{
		ID:    "city-development",
		Label: "City Development Plan",
		SubCategories: []SubCategory{
			{ID: "dp-ongoing", Label: "Ongoing DP process"},
			{ID: "dp-delay", Label: "Delay in plan receiving"},
			{ID: "dp-reservation", Label: "Complaint against DP Reservation"},
			{ID: "dp-road", Label: "Complaint against DP Road"},
			{ID: "environmental-damage", Label: "Environmental damage"},
			{ID: "other-development", Label: "Other (Development Planning)"},
		},
	},
	{
		ID:    "communicable-disease",
		Label: "Communicable Disease",
		SubCategories: []SubCategory{
			{ID: "swine-flu-dengue", Label: "Diseases like Swine Flu, Dengue, Chikungunya etc"},
			{ID: "other-disease", Label: "Others (Communicable Disease)"},
		},
	},
	{
		ID:            "drainage",
		Label:         "Drainage",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "manhole-missing", Label: "Replacement of missing/damaged manholes/inspection"},
			{ID: "drainage-leakage", Label: "Stopping leakage of drainage water in Nalla/River"},
			{ID: "choked-drain", Label: "Cleaning/Overflowing choked drains or manholes"},
			{ID: "other-drainage", Label: "Others (DRN)"},
			{ID: "storm-water-chamber", Label: "Providing/repairing of storm water chamber and cover"},
			{ID: "cleaning-chamber", Label: "Cleaning of storm water chamber and nalla"},
			{ID: "pipe-repair", Label: "Repairs of pipe sewers/main sewers"},
			{ID: "manhole-raising", Label: "Raising of manhole (except in monsoon)"},
			{ID: "chamber-overflow", Label: "Stopping chamber overflow (HO)"},
			{ID: "sewage-treatment", Label: "Problem regarding sewage treatment plant (HO)"},
			{ID: "jica-project", Label: "Others (JICA Project) (HO)"},
			{ID: "septic-cleaning", Label: "Septic Tank Cleaning"},
		},
	},
	{
		ID:            "encroachment",
		Label:         "Encroachments on public premises/roads",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "illegal-hawkers", Label: "Removal of illegal hawkers/stall/hut/workshop/garage structure on footpath/roads"},
			{ID: "religious-structure", Label: "Illegal religious structures on road/footpath"},
			{ID: "shopkeeper-material", Label: "Shopkeeper's material on road/footpath"},
			{ID: "illegal-pandal", Label: "Illegal pandals/arches etc. on road/footpath"},
			{ID: "showroom-vehicles", Label: "Vehicles of showroom on road/footpath"},
			{ID: "other-encroachment", Label: "Others (Encroachment W.O.)"},
			{ID: "encroachment-policy", Label: "Policy decisions regarding Encroachment department"},
			{ID: "encroachment-ho", Label: "Other (Encroachment H.O.)"},
		},
	},
	{
		ID:    "mosquito",
		Label: "Fogging/Mosquito nuisance/Dengue malaria disease",
		SubCategories: []SubCategory{
			{ID: "mosquito-fogging", Label: "Mosquito nuisance/Fogging"},
			{ID: "dengue-case", Label: "Dengue case etc."},
			{ID: "hyacinth-river", Label: "Hyacinth at river"},
			{ID: "water-storage", Label: "Unauthorised/Uncovered water storage tanks"},
		},
	},
	{
		// Odour cannot be detected from a photo, so this stays non-detectable.
		ID:    "garbage-depot",
		Label: "Garbage Depot Complaint",
		SubCategories: []SubCategory{
			{ID: "garbage-burning", Label: "Burning Of Garbage"},
			{ID: "garbage-smell", Label: "Odour (Foul smell) from Garbage Depot"},
		},
	},
	{
		ID:            "garden-civil",
		Label:         "Garden Civil maintenance work",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "playing-equipment", Label: "Repairing of playing equipments in garden"},
			{ID: "jogging-track", Label: "Repairing of Jogging Track in garden"},
			{ID: "garden-civil-work", Label: "Repairing of civil work in Garden"},
			{ID: "other-garden-civil", Label: "Others (Garden-Civil)"},
		},
	},
	{
		ID:            "garden-maintenance",
		Label:         "Garden Cleaning & maintenance",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "other-garden-ho", Label: "Others (Garden) (HO)"},
			{ID: "planting-trees", Label: "Planting of trees besides divider/footpath (HO)"},
			{ID: "garden-cleaning", Label: "Cleaning of Garden (HO)"},
			{ID: "garden-horticulture", Label: "Maintenance of Garden (Horticulture Related) (HO)"},
		},
	},
	{
		ID:            "garden-electric",
		Label:         "Garden Electric maintenance work",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "garden-lights", Label: "Repairing of Lights/Halogen in Garden"},
			{ID: "other-garden-electric", Label: "Others (Garden-Electrical)"},
		},
	},
	{
		ID:    "information-technology",
		Label: "Information Technology",
		SubCategories: []SubCategory{
			{ID: "other-it", Label: "Other (I.T.)"},
			{ID: "cfc-issues", Label: "CFC related issues"},
			{ID: "mobile-app", Label: "Mobile App Issue"},
			{ID: "website-issue", Label: "Website/Web Application Related"},
		},
	},
	{
		ID:    "license",
		Label: "License (Parwana)",
		SubCategories: []SubCategory{
			{ID: "pet-license", Label: "Pet License"},
			{ID: "other-license", Label: "Others License (Parwana)"},
		},
	},
	{
		ID:    "marriage",
		Label: "Marriage Registration",
		SubCategories: []SubCategory{
			{ID: "certificate-not-received", Label: "Marriage Certificate not received in time"},
			{ID: "marriage-correction", Label: "Correction in Marriage Certificate"},
			{ID: "other-marriage", Label: "Other (Marriage Registration)"},
		},
	},
	{
		ID:    "hospital",
		Label: "PMC Hospitals treatment",
		SubCategories: []SubCategory{
			{ID: "hospital-treatment", Label: "Related to PMC Hospital, Treatment and Staff"},
			{ID: "other-medical", Label: "Others (Medical Unit)"},
		},
	},
	{
		ID:    "property-tax",
		Label: "Property Tax Assessment/Payment",
		SubCategories: []SubCategory{
			{ID: "assessment-register", Label: "Receipt of Assessment Register"},
			{ID: "name-correction", Label: "Correction of Name on Property tax bill"},
			{ID: "address-correction", Label: "Address correction"},
			{ID: "other-property-tax", Label: "Other (Property Tax)"},
			{ID: "abhay-yojana", Label: "Abhay Yojana"},
			{ID: "assessment-commencement", Label: "Assessment according to commencement"},
			{ID: "triple-tax", Label: "Triple Tax cancellation"},
			{ID: "residential-commercial", Label: "Assessment from residential to Non residential(commercial)"},
			{ID: "arv-correction", Label: "Correction in ARV due to change in use of property"},
			{ID: "discount-40", Label: "40% discount on the residential taxable value"},
			{ID: "self-assessment", Label: "SELF ASSESSMENT"},
			{ID: "commercial-residential", Label: "Assessment from Non residential(commercial) to residential"},
			{ID: "bill-separation", Label: "Separation of Bill"},
			{ID: "outstanding-correction", Label: "Correction in outstanding Property Tax"},
		},
	},
	{
		ID:            "road",
		Label:         "Road, pavement, divider, pits, repair/new speed breaker/zebra crossing",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "pothole", Label: "Repairing potholes on Road"},
			{ID: "road-resurfacing", Label: "Repair/re-surfacing of roads/footpaths"},
			{ID: "stop-line", Label: "Stop line at Signal before Zebra Crossing"},
			{ID: "speed-breaker", Label: "Making/Repairing/Removal Speedbreaker"},
			{ID: "parking-line", Label: "Marking of Parking Line"},
			{ID: "pothole-manhole", Label: "Repairing pothole around manhole"},
			{ID: "zebra-crossing", Label: "About New/Old Zebra Crossing"},
			{ID: "debris-lifting", Label: "Lifting of debris on road and footpath"},
			{ID: "footpath-painting", Label: "Painting of Footpath/Divider/Beautification of Chowk etc"},
			{ID: "water-logging", Label: "Clearing Water Logging on Road"},
			{ID: "other-road", Label: "Others road"},
		},
	},
	{
		ID:            "garbage-sweeping",
		Label:         "Road Sweeping/Toilet Cleaning/Garbage disposal",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "road-sweeping", Label: "Sweeping/cleaning the road"},
			{ID: "debris-removal", Label: "Removal of Debris"},
			{ID: "garbage-bin-overflow", Label: "Garbage bin overflowing"},
			{ID: "garbage-dump", Label: "Huge littering in open plot/Garbage Dump"},
			{ID: "toilet-blockage", Label: "Public toilet(s) blockage"},
			{ID: "toilet-electricity", Label: "No electricity in public toilet(s)"},
			{ID: "garbage-not-lifted", Label: "Garbage not lifted from co-authorized collection point/House gully"},
			{ID: "garbage-vehicle", Label: "Garbage vehicle not arrived"},
			{ID: "garbage-lorry", Label: "Garbage lorry not covered"},
			{ID: "dustbin-replace", Label: "Providing/Removing/Replacing dustbins"},
			{ID: "dead-animal-removal", Label: "Removal of dead animals"},
			{ID: "psc-cleaning", Label: "Cleaning of P.S.C block/channels"},
			{ID: "toilet-attendant", Label: "No attendant at public toilets"},
			{ID: "ragpicker", Label: "Ragpicker not attending"},
			{ID: "tree-cutting-lift", Label: "Lifting of tree cutting"},
			{ID: "toilet-cleaning", Label: "Public toilet(s) cleaning"},
			{ID: "dustbin-cleaning", Label: "Dustbins not cleaned"},
			{ID: "toilet-water", Label: "No water supply in public toilet(s)"},
			{ID: "garbage-burning-plastic", Label: "Burning of Garbage/Plastic waste"},
			{ID: "plastic-bag-usage", Label: "Usage of Plastic bag by shopkeepers"},
			{ID: "other-swm", Label: "Others (SWM)"},
		},
	},
	{
		ID:            "stray-animals",
		Label:         "Stray Animals",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "dog-nuisance", Label: "Dog Nuisance"},
			{ID: "pig-nuisance", Label: "Pig Nuisance"},
			{ID: "other-animal-nuisance", Label: "Other Animals Nuisance"},
		},
	},
	{
		ID:            "stray-dogs",
		Label:         "Stray Dogs",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "unsterilised-dogs", Label: "Stray Dogs - Unsterilised Dogs"},
			{ID: "injured-dogs", Label: "Treatment for Injured/Sick Dogs"},
			{ID: "rabies-dogs", Label: "Violent/Suspected Rabies dogs"},
			{ID: "other-stray-dogs", Label: "other (Stray Dogs)"},
		},
	},
	{
		ID:            "street-lights",
		Label:         "Street Lights",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "electrocution-prevention", Label: "Preventing electrocution/shock"},
			{ID: "pole-removal", Label: "Removing street light pole (pole obstructing road)"},
			{ID: "pole-repair", Label: "Repairing street light pole (damaged/fallen)"},
			{ID: "light-functional", Label: "Making street light functional"},
			{ID: "new-street-light", Label: "A new street light (new demand)"},
			{ID: "electric-box-removal", Label: "Removal of open electric box (silver color) on street light pole"},
			{ID: "toilet-motor", Label: "Public Toilets water motor not working"},
			{ID: "light-shutdown", Label: "Shut down street light"},
			{ID: "other-electric", Label: "other (ELECTRICAL)"},
		},
	},
	{
		ID:            "tree-authority",
		Label:         "Tree Authority",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "branch-trimming-roadside", Label: "Trimming of branches in Roadside trees"},
			{ID: "branch-trimming-public", Label: "Trimming of branches in government/public place/road"},
			{ID: "fallen-tree", Label: "Fallen tree on road"},
			{ID: "tree-cutting", Label: "Branch of tree/complete tree cutting"},
			{ID: "trimming-permission", Label: "Permission to Trim Branches in private Society/Land"},
			{ID: "illegal-cutting", Label: "Illegal Cutting of tree"},
			{ID: "other-tree", Label: "Other (Tree Authority)"},
		},
	},
	{
		ID:            "unauthorized-ads",
		Label:         "Unauthorized hoardings banners/advertisements",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "unauthorized-hoardings", Label: "Unauthorized hoardings banners/advertisements on roads/footpath/buildings/directions panels"},
		},
	},
	{
		ID:            "slaughterhouse",
		Label:         "Unauthorized slaughterhouse/crude meat",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "illegal-slaughter", Label: "Illegal Slaughter House"},
			{ID: "meat-hygiene", Label: "Hygiene of meat"},
			{ID: "other-khatik", Label: "Others (Khatik Vibhag)"},
		},
	},
	{
		ID:            "water-supply",
		Label:         "Water Supply",
		AIDetectable:  true,
		RequiresImage: true,
		SubCategories: []SubCategory{
			{ID: "water-wastage", Label: "Water Flowing/wastage"},
			{ID: "water-meter", Label: "Removal/Installation of new water meters"},
			{ID: "low-pressure-area", Label: "Low pressure to entire area"},
			{ID: "no-water", Label: "NO water Supply"},
			{ID: "low-pressure-individual", Label: "Low water pressure to Individual"},
			{ID: "pipeline-leakage", Label: "Pipeline/Valve Leakage of PMC line"},
			{ID: "contaminated-water", Label: "Contamination/Turbid Water Problem"},
			{ID: "water-misuse", Label: "Water misuse (washing Center/Spreading)"},
			{ID: "water-theft", Label: "Unauthorised tapping of water connection/Water Theft"},
			{ID: "unauthorized-use", Label: "Unauthorised use of water from Residential to Commercial area"},
			{ID: "meter-bill-correction", Label: "Correction in water meter bill (Name/Address/Amount etc)"},
			{ID: "water-meter-not-working", Label: "Water meter not working"},
			{ID: "water-timetable", Label: "No water as per time table"},
			{ID: "motor-pump", Label: "Motor/Pump on water line of pmc"},
			{ID: "toilet-tank-leakage", Label: "Leakage of public toilet water tank"},
			{ID: "other-water", Label: "Others (Water Supply)"},
		},
	},
}

// visualLabelMap reconciles the coarse labels a vision model tends to emit
// with canonical taxonomy ids.
var visualLabelMap = map[string]VisualMatch{
	"pothole":                   {MainCategory: "road", SubCategory: "pothole", Confidence: 0.9},
	"garbage":                   {MainCategory: "garbage-sweeping", SubCategory: "garbage-dump", Confidence: 0.85},
	"puddle":                    {MainCategory: "road", SubCategory: "water-logging", Confidence: 0.8},
	"broken-streetlight":        {MainCategory: "street-lights", SubCategory: "pole-repair", Confidence: 0.85},
	"fallen-tree":               {MainCategory: "tree-authority", SubCategory: "fallen-tree", Confidence: 0.95},
	"dead-animal":               {MainCategory: "garbage-sweeping", SubCategory: "dead-animal-removal", Confidence: 0.9},
	"choked-drain":              {MainCategory: "drainage", SubCategory: "choked-drain", Confidence: 0.8},
	"unauthorized-construction": {MainCategory: "building-permission", SubCategory: "unauthorized-construction", Confidence: 0.75},
	"encroachment":              {MainCategory: "encroachment", SubCategory: "illegal-hawkers", Confidence: 0.7},
}
