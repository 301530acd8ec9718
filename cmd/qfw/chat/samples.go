package chat

// sampleQuestions are the canned example queries behind the Ctrl+E
// filler. Draws are independent and uniform; repeats are expected.
var sampleQuestions = [5]string{
	"What are common side effects of ibuprofen?",
	"Can I take paracetamol together with amoxicillin?",
	"Can I double my blood pressure medication if I missed a dose?",
	"What is a normal resting heart rate for an adult?",
	"What are early symptoms of type 2 diabetes?",
}

// sampleQuestion returns one uniformly-random canned question.
func (m Model) sampleQuestion() string {
	return sampleQuestions[m.pick(len(sampleQuestions))]
}
