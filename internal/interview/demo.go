package interview

// demoSignaturePNG is a 1x1 PNG, enough to exercise the signature embedding
// path without shipping a real drawing.
const demoSignaturePNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// Demo returns a canned, fully-populated state used by the demo-data toggle.
func Demo() State {
	s := Initial()

	group := func(section string, values map[string]string) {
		for field, value := range values {
			s = Apply(s, SetField{Section: section, Field: field, Value: value})
		}
	}
	item := func(section string, index int, values map[string]string) {
		for len(s.Records[section].Items) <= index {
			s = Apply(s, AppendItem{Section: section})
		}
		for field, value := range values {
			s = Apply(s, SetItemField{Section: section, Index: index, Field: field, Value: value})
		}
	}

	group("aboutMe", map[string]string{
		"fullName":        "Alex Rivera",
		"dateOfBirth":     "March 14, 1978",
		"location":        "Portland, Oregon",
		"reason":          "Just being proactive — everyone should do this",
		"intendedFor":     "My spouse Jordan and our two children",
		"personalContext": "We bought the house in 2012 and most of our paperwork lives in the gray filing cabinet in the study.",
	})

	item("contacts", 0, map[string]string{
		"name":         "Jordan Rivera",
		"role":         "Spouse / Partner",
		"relationship": "Spouse",
		"phone":        "(503) 555-0114",
		"email":        "jordan.rivera@example.com",
	})
	item("contacts", 1, map[string]string{
		"name":  "Maria Chen",
		"role":  "Attorney",
		"phone": "(503) 555-0187",
		"notes": "Handled our wills in 2021. Office is downtown on Alder St.",
	})
	item("contacts", 2, map[string]string{
		"name":  "Sam Okafor",
		"role":  "Financial advisor",
		"email": "sam@okaforwealth.example.com",
	})

	item("financial", 0, map[string]string{
		"institution":    "First Cascade Bank",
		"accountType":    "Checking",
		"approxValue":    "$12,000",
		"hasBeneficiary": "Yes — Jordan",
		"accessNotes":    "Joint account, Jordan already has full access. Debit cards in the top desk drawer.",
	})
	item("financial", 1, map[string]string{
		"institution":    "Vanguard",
		"accountType":    "401(k)",
		"approxValue":    "$230,000",
		"hasBeneficiary": "Yes — Jordan, children contingent",
	})
	item("financial", 2, map[string]string{
		"institution": "Coinbase",
		"accountType": "Cryptocurrency",
		"approxValue": "$4,500",
		"accessNotes": "Recovery phrase is in the safe deposit box at First Cascade, branch on 5th.",
	})

	item("insurance", 0, map[string]string{
		"carrier":              "Pacific Mutual",
		"insuranceType":        "Life insurance",
		"policyNumberLocation": "Policy folder, gray filing cabinet, second drawer",
		"agentContact":         "Dana Whitfield, (503) 555-0102",
		"isEmployerProvided":   "No",
	})
	item("insurance", 1, map[string]string{
		"carrier":            "Evergreen Health",
		"insuranceType":      "Health insurance",
		"isEmployerProvided": "Yes",
		"employerContact":    "HR portal at work, benefits@employer.example.com",
	})

	item("property", 0, map[string]string{
		"propertyType":      "Primary residence",
		"description":       "House on SE Maple Ave",
		"location":          "4821 SE Maple Ave, Portland, OR",
		"deedTitleLocation": "Safe deposit box, First Cascade Bank",
		"hasMortgage":       "Yes — about $180,000 remaining",
	})
	item("property", 1, map[string]string{
		"propertyType": "Vehicle",
		"description":  "2019 Subaru Outback",
		"location":     "Title in the filing cabinet",
	})

	group("digital", map[string]string{
		"emailAccounts":   "Personal: alex.rivera@example.com (Gmail). Work email will be closed by the employer.",
		"passwordManager": "1Password family account. Jordan has the emergency kit with the master password.",
		"twoFactorAuth":   "Authenticator app on my phone. Backup codes printed and stored with the passport.",
		"subscriptions":   "Netflix, Spotify family, NYT — all on the First Cascade credit card.",
	})

	item("legal", 0, map[string]string{
		"documentType": "Will",
		"location":     "Original with Maria Chen (attorney); copy in the filing cabinet",
		"lastUpdated":  "2021",
	})
	item("legal", 1, map[string]string{
		"documentType": "Power of Attorney (Healthcare)",
		"location":     "Filing cabinet, folder marked Legal",
		"lastUpdated":  "2021",
		"notes":        "Jordan is the designated agent; Maria has the signed original.",
	})

	item("debts", 0, map[string]string{
		"debtType":      "Mortgage",
		"lender":        "First Cascade Bank",
		"approxBalance": "$180,000",
		"isCosigned":    "No",
	})

	group("dependents", map[string]string{
		"minorChildren":           "Two children, ages 9 and 12.",
		"guardianshipPreferences": "My sister Elena Rivera, confirmed with her in 2023.",
		"pets":                    "One dog, Biscuit. Vet is Maple Animal Clinic.",
	})

	group("wishes", map[string]string{
		"funeralPreferences": "Cremation, small gathering, no formal service. Something outdoors if the weather cooperates.",
		"organDonation":      "Yes, registered donor.",
		"personalMessages":   "Letters for the kids are in the top drawer of my desk, sealed and labeled.",
	})

	group("verification", map[string]string{
		"fullName":         "Alex Rivera",
		"verificationDate": "June 2, 2025",
		"familyPassphrase": "The lake house summer",
		"signatureData":    demoSignaturePNG,
	})

	s = Apply(s, SetActiveSection{Section: "verification"})
	return s
}
