package topic

// DefaultResponse is returned when no rule matches.
const DefaultResponse = "I understand you're asking about optimizing your supply chain. Let me analyze your data and provide specific recommendations. Could you provide more details about your current challenges or specific materials you're working with?"

// Greeting opens every new conversation.
const Greeting = "Hello! I'm your AI Copilot for sustainable supply chain optimization. I can help you reduce waste, find circular economy opportunities, and optimize your inventory. What would you like to explore today?"

// FollowUpSuggestions accompany every assistant reply.
var FollowUpSuggestions = []string{
	"Show me more details",
	"Create an action plan",
	"Schedule a consultation",
	"Export this analysis",
}

// StarterSuggestions accompany the greeting.
var StarterSuggestions = []string{
	"How can I reduce waste in my manufacturing process?",
	"Find buyers for my surplus steel inventory",
	"Analyze my supply chain carbon footprint",
	"Suggest NGOs for donating excess materials",
}

const (
	wasteResponse  = "Based on your data, I've identified 3 key areas for waste reduction:\n\n1. **Overproduction**: Your steel inventory is 23% above optimal levels\n2. **Packaging**: Switch to biodegradable alternatives to reduce 40% plastic waste\n3. **Energy**: Optimize production schedules to reduce energy consumption by 15%\n\nWould you like me to create an action plan for any of these areas?"
	steelResponse  = "I found 4 potential buyers for your surplus steel inventory:\n\n🏭 **MetalCraft Industries** - 8km away\n• Needs: 10-15 tons monthly\n• Price: $2,800/ton\n• Sustainability score: 95/100\n\n🔧 **BuildTech Solutions** - 15km away\n• Needs: 5-8 tons monthly  \n• Price: $2,650/ton\n• Fast pickup available\n\nShall I initiate contact with any of these buyers?"
	carbonResponse = "Your current supply chain carbon footprint analysis:\n\n📊 **Total CO₂ Emissions**: 847 tons/month\n🚛 **Transportation**: 35% (295 tons)\n🏭 **Manufacturing**: 45% (381 tons)\n📦 **Packaging**: 20% (171 tons)\n\n**Quick Wins:**\n• Switch to rail transport: -12% emissions\n• Local supplier sourcing: -8% emissions\n• Renewable energy: -25% emissions\n\nImplementing all suggestions could reduce emissions by 45%. Want a detailed roadmap?"
	donateResponse = "I've matched your excess materials with these verified NGOs:\n\n🤝 **EcoBuilders Foundation**\n• Needs: Construction materials\n• Impact: Houses 50 families/month\n• Tax benefit: $12,000\n\n🌱 **Green Schools Initiative**\n• Needs: Office supplies & furniture\n• Impact: Supports 15 schools\n• Tax benefit: $8,500\n\nBoth organizations can arrange pickup within 48 hours. Shall I schedule a pickup?"
)

// StockRules returns the supply-chain topics in evaluation order.
func StockRules() []Rule {
	return []Rule{
		Keyword("waste", wasteResponse),
		Keyword("steel", steelResponse),
		Keyword("carbon", carbonResponse),
		Keyword("donate", donateResponse),
	}
}

// QuickAction is a canned prompt offered beside the chat.
type QuickAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

// QuickActions lists the sidebar shortcuts.
func QuickActions() []QuickAction {
	return []QuickAction{
		{Title: "Reduce Stock", Description: "Optimize excess inventory", Prompt: "Help me optimize my current inventory levels and reduce excess stock"},
		{Title: "Find Exchange", Description: "Match with circular partners", Prompt: "Find circular economy partners for my surplus materials"},
		{Title: "Donate Surplus", Description: "Connect with NGOs", Prompt: "Connect me with NGOs that can use my excess inventory"},
		{Title: "Sustainability Audit", Description: "Full chain analysis", Prompt: "Perform a full sustainability audit of my supply chain"},
	}
}
