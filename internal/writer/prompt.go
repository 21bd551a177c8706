package writer

import "fmt"

const verboseSuffix = "\n write at least 400 tokens"

// BuildPrompt renders the instruction template for req.Function. Points and
// PreviousText are used as given; presets must already be applied.
func BuildPrompt(req Request) (string, error) {
	switch req.Function {
	case WriteProperly:
		return "Write this properly:  \n" + req.Text, nil
	case FixGrammar:
		return "Write the same, fixing the grammar:  \n" + req.Text, nil
	case RemovePassiveVoice:
		return "Remove the passive voice in the next text: \n {" + req.Text + "}", nil
	case Summarize:
		return "Summarize the text:  \n" + req.Text, nil
	case AnswerEmail:
		prompt := "Answer the email:  \n" + req.Text +
			".\n Using these main ideas: \n" + req.Points +
			"\n Write it properly and as a human English native speaker would do it."
		if req.Continuation == Continue {
			prompt += "\n" + req.PreviousText
		}
		return prompt, nil
	case AnswerQuestion:
		if req.Points == "" {
			return "Answer the question:  \n" + req.Text +
				"\n Answer factually and thinking step by step.", nil
		}
		return "Answer the question:  \n" + req.Text +
			".\n Using these main ideas: \n" + req.Points +
			"\n Answer factually and thinking step by step.", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFunction, string(req.Function))
}
