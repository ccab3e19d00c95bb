package models

const (
	ExcerptSeparator = "\n\n"

	// NotFoundAnswer is the fixed reply when no retrieved chunk supports
	// the question.
	NotFoundAnswer = "I could not find this information in the document."
)

var (
	SummaryPromptTemplate = `Based EXCLUSIVELY on these excerpts, write a %s summary of '%s':

%s

REQUIRED FORMAT:
- Main Title: [title]
- Key Points (3-5):
  1. [point 1] (Ref: Page X)
  2. [point 2] (Ref: Page Y)
- Practical Applications: [2-3 examples]
- Connections to Other Concepts: [1-2 connections]
`

	QuizPromptTemplate = `Generate %d multiple-choice questions about '%s' based on these excerpts:

%s

REQUIRED FORMAT (JSON list):
[
    {
        "question": "Full question text",
        "options": [
            "A) Option 1",
            "B) Option 2",
            "C) Option 3",
            "D) Option 4"
        ],
        "correct_answer": "Full text of the correct option (e.g. 'A) Option 1')",
        "explanation": "Detailed explanation with a reference to the excerpt"
    }
]
Answer with the JSON list only, using ONLY the excerpts above.
`

	FlashcardPromptTemplate = `Create %d flashcards about '%s' based on these excerpts:

%s

REQUIRED FORMAT (JSON list):
[
    {
        "front": "Question or concept",
        "back": "Complete answer",
        "source": "Page X"
    }
]
Answer with the JSON list only, using ONLY the excerpts above.
`

	AnswerPromptTemplate = `Answer the question based EXCLUSIVELY on the document below:

Context:
%s

Question: %s

Rules:
1. Be precise and cite specific excerpts
2. Format: "According to page X... [answer]"
3. If the answer is not in the context, reply exactly: "%s"
`
)
