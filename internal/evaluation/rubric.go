package evaluation

// RubricVersion identifies the phrase tables below. Bump it whenever a table changes.
const RubricVersion = "2024.1"

// Dimension weights for the overall answer score
const (
	accuracyWeight       = 0.25
	clarityWeight        = 0.20
	depthWeight          = 0.25
	relevanceWeight      = 0.20
	timeEfficiencyWeight = 0.10
)

// Base score every non-empty answer starts from on accuracy, clarity, depth and relevance
const baseScore = 50.0

// Per-phrase bonus and cap tables
const (
	minAccuracyChars = 10

	conceptCoveragePoints   = 30.0
	correctnessPhrasePoints = 5.0
	correctnessPhraseCap    = 20.0

	noSentenceClarity     = 20.0
	sentenceLengthBonus   = 20.0
	longSentencePenalty   = 10.0
	choppySentencePenalty = 5.0
	clarityPhrasePoints   = 5.0
	clarityPhraseCap      = 15.0
	hedgingPhrasePenalty  = 10.0
	hedgingPhraseCap      = 25.0

	depthPhrasePoints = 5.0
	depthPhraseCap    = 20.0
	idealPointPoints  = 5.0
	idealPointCap     = 15.0

	questionOverlapPoints = 30.0
	idealCoveragePoints   = 20.0
	minOverlapWordLength  = 4

	comprehensiveChars = 150
	briefChars         = 50
)

// CorrectnessPhrases signal a technically grounded answer. Only technical questions use them.
var CorrectnessPhrases = []string{
	"correct", "accurate", "right", "proper", "works", "solution", "approach",
}

// ClarityPhrases signal a structured, signposted answer
var ClarityPhrases = []string{
	"i think", "in my opinion", "for example", "specifically",
	"first", "second", "finally", "therefore",
}

// HedgingPhrases are filler and hedging that cost clarity
var HedgingPhrases = []string{
	"i don't know", "maybe", "probably", "kinda",
	"sort of", "umm", "uh", "like",
}

// DepthPhrases signal elaboration beyond the surface answer
var DepthPhrases = []string{
	"furthermore", "moreover", "additionally", "in detail",
	"example", "specifically", "consider", "analyze",
}

// ExamplePhrases mark concrete examples in an answer
var ExamplePhrases = []string{"for example", "specifically", "such as"}

// UncertaintyPhrases mark an answer as unconfident
var UncertaintyPhrases = []string{"i don't know", "not sure", "maybe", "probably"}

// Feedback lines, one per aspect and band
const (
	bandExcellent = "Excellent - Well done!"
	bandGood      = "Good - Solid response."
	bandFair      = "Fair - Room for improvement."
	bandNeedsWork = "Needs Improvement - Focus here."
)

// Strength and weakness labels
const (
	StrengthComprehensive = "Comprehensive answer with good detail"
	StrengthExamples      = "Provided specific examples"
	StrengthKeyConcepts   = "Covered key concepts well"
	StrengthStructured    = "Well-structured response"

	WeaknessTooBrief        = "Answer too brief - consider providing more detail"
	WeaknessUncertain       = "Uncertain language - be more confident"
	WeaknessMissingPrefix   = "Missing key concepts: "
	WeaknessPoorlyStructure = "Could structure the response better"
)
