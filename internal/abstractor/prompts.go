package abstractor

import (
	"fmt"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

const basePrompt = `You are extracting recorded title documents for a New York State abstract. Output structured JSON data.

## CRITICAL OUTPUT REQUIREMENT
You MUST output ONLY valid JSON. No text before or after the JSON. Match the schema exactly.

## EXTRACTION METHODOLOGY

1. **Date Rules**:
   - If multiple acknowledgment dates exist, use the LATEST date
   - Format: "Month DD, YYYY" (e.g., "March 11, 2025")

2. **Consideration**: Extract from the DEED BODY, not from clerk's recording stamp

3. **Mandatory Clauses** (transcribe verbatim):
   - "Being the same premises" clause
   - ALL "Subject to" clauses
   - "Together with" clauses (ONLY if they grant specific material rights like streets, alleys, mineral rights - ignore generic boilerplate)
   - "Excepting and Reserving" clauses
   - Unique notes/provisions (handwritten, non-standard language)
   - Note missing attachments (e.g., "Schedule A referenced but not provided")

4. **Handwritten Annotations**: Include in the document's notes, do NOT create a separate entry

## JSON SCHEMA

{
  "documentType": "",
  "category": "",
  "parties": {"fromLabel": "", "toLabel": "", "from": [], "to": []},
  "dates": {"recordDate": ""},
  "recording": {"locationInstrumentNumber": "", "county": ""},
  "property": {"legalDescription": ""},
  "quality": {"confidence": 90}
}

ONLY include these additional fields IF they have data:
- dates.instrumentDate, dates.acknowledgedDate
- parties.aka
- monetary.considerationAmount, monetary.mortgageAmount, monetary.transferTaxes
- property.municipality, property.taxParcelId
- clauses.beingSamePremises, clauses.togetherWith, clauses.subjectTo, clauses.exceptingAndReserving
- quality.flags, quality.comments`

var kindPrompts = map[titledoc.Kind]string{
	titledoc.KindDeed: `## DEED EXTRACTION RULES
- Parties: Use "Grantor" and "Grantee" labels
- Extract consideration from deed body (NOT clerk's stamp)
- Transcribe "Being the same premises" clause verbatim
- Transcribe ALL "Subject to" clauses verbatim
- Transcribe "Together with" ONLY if granting specific rights (not boilerplate)
- Transcribe "Excepting and Reserving" clauses verbatim`,

	titledoc.KindMortgage: `## MORTGAGE EXTRACTION RULES
- Parties: Use "Mortgagor" (borrower) and "Mortgagee" (lender)
- Extract mortgage amount (principal)
- Note if MERS (Mortgage Electronic Registration Systems) is involved
- Extract property description
- Note any subordination clauses
- Transcribe "Subject to" clauses`,

	titledoc.KindSatisfaction: `## SATISFACTION EXTRACTION RULES
- Parties: Use "Mortgagee" and "Mortgagor"
- Identify the mortgage being satisfied (book/page or instrument number)
- Note the satisfaction or discharge language verbatim in notes`,

	titledoc.KindJudgment: `## JUDGMENT EXTRACTION RULES
- Parties: Use "Plaintiff" and "Defendant"
- Case #: Use County Clerk's Index Number from recording stamp (e.g., B2015007890)
  DO NOT use court's internal docket number
- Extract: Defendant's address, judgment amount, court name`,

	titledoc.KindLien: `## LIEN EXTRACTION RULES
- Extract lien type (mechanic's, tax, etc.)
- Extract lien amount
- Extract lienor and property owner
- Note if lien is discharged/satisfied`,

	titledoc.KindEasement: `## EASEMENT EXTRACTION RULES
- Extract easement type (right of way, utility, etc.)
- Identify dominant and servient estates
- Extract specific rights granted
- Note any limitations or conditions`,

	titledoc.KindUCC: `## UCC FILING EXTRACTION RULES
- Extract secured party and debtor
- Extract collateral description
- Note filing number and date
- Note if continuation or termination`,
}

// inventoryPrompt asks for the first-pass document inventory. A zero page
// count means the caller could not determine it.
func inventoryPrompt(pageCount int) string {
	scope := "this title document"
	if pageCount > 0 {
		scope = fmt.Sprintf("this %d-page title document", pageCount)
	}
	return fmt.Sprintf(`Scan %s and create an inventory of ALL documents.

For EACH document, identify:
1. Document type (Deed, Mortgage, Satisfaction, Judgment, UCC, etc.)
2. Parties: from (grantor/mortgagor) and to (grantee/mortgagee)
3. Record date
4. Page numbers where this document starts and ends

Be thorough - list EVERY document in the file.

Output ONLY this JSON structure:
{
  "inventory": [
    {
      "id": 1,
      "type": "Deed",
      "from": ["Party Name"],
      "to": ["Party Name"],
      "recordDate": "Month DD, YYYY",
      "pages": {"start": 5, "end": 7}
    }
  ]
}

Do not include explanatory text. Output ONLY valid JSON.`, scope)
}

// detailPrompt asks for the second-pass full extraction of a single
// inventoried document, routed through the rules for its classified kind.
func detailPrompt(entry titledoc.InventoryEntry, docNum int) string {
	kind := titledoc.Classify(entry.Type)
	rules, ok := kindPrompts[kind]
	if !ok {
		rules = kindPrompts[titledoc.KindDeed]
	}

	pages := "unknown pages"
	if entry.Pages.Start > 0 {
		pages = fmt.Sprintf("pages %d-%d", entry.Pages.Start, entry.Pages.End)
	}

	return fmt.Sprintf(`%s

%s

CRITICAL: Extract ONLY document #%d from this file.

This is a %s that appears on %s.
IGNORE all other documents in the file.

Extract complete details for this ONE document:
- Full legal description (verbatim)
- All clauses (verbatim): "being same premises", "subject to", "together with", "excepting and reserving"
- Complete party information with all names
- All dates (instrument, acknowledged, recorded)
- Recording information (location/instrument number, county)
- Monetary amounts (consideration, mortgage amount, transfer taxes)
- Property details (tax parcel, municipality)

IMPORTANT: Output valid JSON only. Ensure all strings are properly escaped and all braces/brackets are balanced.
Output a single document object matching the schema. Do not wrap in array.`,
		basePrompt, rules, docNum, entry.Type, pages)
}
