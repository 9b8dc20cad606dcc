package scan

import "fmt"

// buildPrompt renders the single extraction instruction sent to the model.
// The contract: return ONLY a JSON object with the fixed receipt shape. The
// store_type / primary_category fields steer categorization internally and
// are stripped from the draft after sanitation.
func buildPrompt(ocrText string) string {
	return fmt.Sprintf(`Extract receipt data from the following OCR text and return ONLY a JSON object. No explanations, no markdown formatting, no conversational text.

OCR Text:
"""
%s
"""

Return JSON with this exact structure:
{
  "store_name": null,
  "date": null,
  "time": null,
  "total_price": null,
  "payment_method": null,
  "items": []
}

INTERNAL USE ONLY (not returned in JSON):
- Also determine store_type and primary_category for your internal categorization logic
- store_type: "supermarket", "clothing", "electronics", "restaurant", "pharmacy", "petrol_station", "hardware", "unknown"
- primary_category: "Boodschappen", "Huishouden", "Verkeer & Vervoer", "Gezondheid & Zorg", "Vrije Tijd & Uitgaan", "Winkels & Kleding", "Financieel & Diensten", "Overig"

Rules:
- store_name: Shop name (string or null)
- date: YYYY-MM-DD format (string or null)
- time: HH:MM 24h format (string or null)
- total_price: Final amount paid (number or null)
- payment_method: "Cash", "Visa", "Bancontact", "Credit Card", etc. (string or null)
- items: Array of objects with name, category, quantity, price (default quantity to 1 if not specified)
- CRITICAL: Extract EVERY single line item that could possibly be a product, even if you're unsure. If it has a name and price, treat it as a product. Be maximally inclusive - when in doubt, include it.
- Include all food items, drinks, household products, clothing, electronics, services, fees, taxes, and any other line items with names and prices.
- BUT filter out: "TOTAAL", "TOTAL", "SUBTOTAAL", "SUBTOTAL", "BTW", "VAT", "TAX", "KORTING", "DISCOUNT", and any line items that are just numbers, codes, or payment method descriptions.

INTERNAL STORE TYPE DETECTION (for categorization logic only):
- Analyze store_name and types of items being sold to determine store type
- "supermarket": Sells food, drinks, household items, sometimes electronics/clothing (Carrefour, Delhaize, Albert Heijn, etc.)
- "clothing": Sells primarily clothing, shoes, accessories (H&M, Zara, C&A, Primark, etc.)
- "electronics": Sells electronics, appliances, gadgets (MediaMarkt, Apple Store, Coolblue, etc.)
- "restaurant": Sells prepared food, drinks for immediate consumption (McDonald's, Quick, Pizza Hut, etc.)
- "pharmacy": Sells medications, health products, personal care (Pharmacie, Kruidvat, Action, etc.)
- "petrol_station": Sells fuel, car products, convenience items (Shell, Total, Q8, etc.)
- "hardware": Sells tools, building materials, home improvement (Brico, Gamma, IKEA, etc.)
- "unknown": If store type cannot be determined

INTERNAL PRIMARY CATEGORY ASSIGNMENT:
- "supermarket" -> "Boodschappen" (mixed-type store)
- "clothing" -> "Winkels & Kleding"
- "electronics" -> "Winkels & Kleding"
- "restaurant" -> "Vrije Tijd & Uitgaan"
- "pharmacy" -> "Gezondheid & Zorg"
- "petrol_station" -> "Verkeer & Vervoer"
- "hardware" -> "Huishouden"
- "unknown" -> "Overig"

CATEGORY ASSIGNMENT - AI-BASED STORE DETECTION:
- CRITICAL: Most receipts are from a single store type, so items should generally share same category
- Use the store_type and primary_category you determined above for categorization

STORE-BASED CATEGORIZATION RULES:
1. **Supermarkets (store_type: "supermarket")**:
   - These are MIXED-TYPE stores - items can have different categories
   - Use individual item categorization based on what item is
   - "Boodschappen": Food items, drinks, snacks
   - "Huishouden": Cleaning supplies, personal care, household items
   - "Gezondheid & Zorg": Medications, health products
   - "Overig": Other items found in supermarkets

2. **Single-Type Stores (all items get same category)**:
   - **Clothing stores (store_type: "clothing")**: ALL items -> "Winkels & Kleding"
   - **Electronics stores (store_type: "electronics")**: ALL items -> "Winkels & Kleding"
   - **Restaurants (store_type: "restaurant")**: ALL items -> "Vrije Tijd & Uitgaan"
   - **Pharmacies (store_type: "pharmacy")**: ALL items -> "Gezondheid & Zorg"
   - **Petrol stations (store_type: "petrol_station")**: ALL items -> "Verkeer & Vervoer"
   - **Hardware stores (store_type: "hardware")**: ALL items -> "Huishouden"

3. **Unknown stores (store_type: "unknown")**: Use individual item categorization or default to "Overig"

AVAILABLE CATEGORIES: "Boodschappen", "Huishouden", "Verkeer & Vervoer", "Gezondheid & Zorg", "Vrije Tijd & Uitgaan", "Winkels & Kleding", "Financieel & Diensten", "Overig"

IMPORTANT:
- For single-type stores, ALL items should have SAME category (use primary_category)
- For supermarkets, items can have different categories based on what they are
- NEVER use any category names other than 8 listed above
- If uncertain, use "Overig" as default

IMPORTANT: Return ONLY the raw JSON object. Nothing else.`, ocrText)
}
