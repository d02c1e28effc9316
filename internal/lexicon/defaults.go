package lexicon

import "github.com/kohljary/driftwatch/internal/model"

// Default returns the built-in tables.
func Default() Lexicon {
	return Lexicon{
		Contexts: map[model.ContextCategory][]string{
			model.ContextTechnical: {
				"```",
				`\b(code|function|functions|method|class|variable|syntax|compile|compiler)\b`,
				`\b(debug|debugging|bug|bugs|error|errors|exception|stack trace)\b`,
				`\b(api|database|query|server|deploy|deployment|config|algorithm)\b`,
				`\b(python|javascript|typescript|golang|rust|sql|git|docker|kubernetes)\b`,
				`\b(implement|implementation|refactor|test|tests|library|framework)\b`,
			},
			model.ContextEmotional: {
				`\b(feel|feeling|feelings|felt)\b`,
				`\b(sad|happy|angry|anxious|anxiety|scared|afraid|lonely|depressed|overwhelmed|stressed)\b`,
				`\b(hurt|grief|grieving|loss|heartbroken|upset|cry|crying|tears)\b`,
				`\b(comfort|support|here for you|care about you)\b`,
				`\b(love|relationship|breakup|friend|friends|family)\b`,
			},
			model.ContextCreative: {
				`\b(story|stories|poem|poetry|fiction|novel|character|characters|plot)\b`,
				`\b(imagine|imagination|creative|creativity|invent|invented)\b`,
				`\b(art|artist|music|song|lyrics|paint|painting|draw|drawing)\b`,
				`\b(metaphor|narrative|scene|verse|stanza|worldbuilding)\b`,
				`\b(write me|let's write|brainstorm)\b`,
			},
			model.ContextPhilosophical: {
				`\b(consciousness|conscious|sentience|sentient|existence|existential)\b`,
				`\b(meaning|purpose|truth|reality|ethics|ethical|moral|morality)\b`,
				`\b(philosophy|philosophical|metaphysics|epistemology|ontology|phenomenology)\b`,
				`\b(free will|identity|selfhood|mind|soul)\b`,
				`\bwhat does it mean\b`,
			},
			model.ContextPractical: {
				`\b(how to|how do i|how can i|step by step|step-by-step|steps)\b`,
				`\b(schedule|plan|planning|organize|task|tasks|todo|deadline|calendar)\b`,
				`\b(buy|cost|budget|price|recipe|cook|cooking|errand|errands)\b`,
				`\b(tip|tips|advice|recommend|recommendation|suggestion)\b`,
			},
			model.ContextResearch: {
				`\b(research|study|studies|paper|papers|journal article|publication)\b`,
				`\b(evidence|data|dataset|findings|hypothesis|experiment|experiments|analysis)\b`,
				`\b(source|sources|citation|citations|cite|literature|survey)\b`,
				`\b(investigate|investigation|according to|peer.reviewed|methodology)\b`,
			},
			model.ContextReflective: {
				`\b(reflect|reflecting|reflection|looking back|in retrospect)\b`,
				`\b(i've learned|i learned|i realize|i realized|insight|insights)\b`,
				`\b(growth|grown|journey|changed|evolving|evolved)\b`,
				`\b(remember|memory|memories|journal|journaling)\b`,
			},
			model.ContextCasual: {
				`\b(hi|hey|hello|lol|haha|cool|awesome|nice)\b`,
				`\b(weekend|weather|movie|movies|game|games|fun)\b`,
				`\b(what's up|how are you|how's it going|good morning|good night)\b`,
				`\b(yeah|yep|nope|sure thing|no worries)\b`,
			},
		},
		Markers: Markers{
			IThink:  []string{`\bi think\b`},
			IFeel:   []string{`\bi feel\b`},
			INotice: []string{`\bi notice\b`},
			Experience: []string{
				`\bi experience\b`,
				`\bmy experience\b`,
				`\bwhat it['’]?s like\b`,
			},
			Hedging: []string{
				`\bperhaps\b`,
				`\bmaybe\b`,
				`\bmight\b`,
				`\bpossibly\b`,
				`\bit seems\b`,
				`\bi['’]m not sure\b`,
				`\bsomewhat\b`,
				`\bpotentially\b`,
			},
			Certainty: []string{
				`\bdefinitely\b`,
				`\bcertainly\b`,
				`\bclearly\b`,
				`\babsolutely\b`,
				`\bwithout a doubt\b`,
				`\bobviously\b`,
				`\bundoubtedly\b`,
			},
			Compassion: []string{
				`\bi understand\b`,
				`\bthat sounds (hard|difficult|painful|overwhelming)\b`,
				`\bi['’]m here\b`,
				`\byou['’]re not alone\b`,
				`\bit['’]s okay\b`,
				`\bbe gentle with yourself\b`,
				`\bi care\b`,
			},
			Witness: []string{
				`\bi see you\b`,
				`\bi hear you\b`,
				`\bwitness(ing|ed)?\b`,
				`\bholding space\b`,
				`\bwhat you['’]re going through\b`,
			},
			Nuance: []string{
				`\bhowever\b`,
				`\bon the other hand\b`,
				`\bat the same time\b`,
				`\bit depends\b`,
				`\bnuanced?\b`,
				`\bcomplexity\b`,
				`\btension between\b`,
			},
			Examples: []string{
				`\bfor example\b`,
				`\bfor instance\b`,
				`\bsuch as\b`,
				`\be\.g\.`,
				`\bto illustrate\b`,
			},
			Elaboration: []string{
				`\bfurthermore\b`,
				`\bmoreover\b`,
				`\badditionally\b`,
				`\bin other words\b`,
				`\bthis means\b`,
				`\bbuilding on\b`,
				`\bto elaborate\b`,
			},
		},
	}
}
