package tools

var classOptions = []Option{
	{Value: "class-7", Label: "Class 7"},
	{Value: "class-8", Label: "Class 8"},
	{Value: "class-9", Label: "Class 9"},
	{Value: "class-10", Label: "Class 10"},
	{Value: "class-11", Label: "Class 11"},
	{Value: "class-12", Label: "Class 12"},
	{Value: "university", Label: "University"},
}

func classField() Field {
	return Field{Name: "level", Label: "Class Level", Type: FieldSelect, Options: classOptions}
}

func languageField() Field {
	return Field{Name: "language", Label: "Language", Type: FieldSelect, Options: []Option{
		{Value: "English", Label: "English"},
		{Value: "Bangla", Label: "Bangla"},
	}}
}

// plainOptions returns select options whose value is also their label.
func plainOptions(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

var translationLanguages = []string{
	"English", "Spanish", "French", "German", "Chinese", "Japanese", "Korean", "Arabic",
	"Hindi", "Portuguese", "Russian", "Italian", "Dutch", "Bengali", "Turkish",
}

// Definitions is the built-in tool set.
var Definitions = []Definition{
	// Student tools
	{
		ID:          "application-writer",
		Title:       "Application Writer",
		Description: "Write formal applications for leave, permission, and requests",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "type", Label: "Application Type", Type: FieldSelect, Options: []Option{
				{Value: "leave", Label: "Leave"},
				{Value: "permission", Label: "Permission"},
				{Value: "request", Label: "Request"},
			}},
			{Name: "recipient", Label: "Recipient", Type: FieldInput, Placeholder: "E.g., The Headmaster", Required: true},
			{Name: "details", Label: "Details", Type: FieldTextarea, Placeholder: "Reason, dates, class and roll number...", Required: true},
		},
		Template: `Write a formal {{.type}} application addressed to {{.recipient}}.

Details: {{.details}}

Include the date, subject line, greeting, body and a respectful closing.
Use proper spacing between sections.`,
	},
	{
		ID:          "letter-writer",
		Title:       "Letter Writer",
		Description: "Write formal and informal letters for any purpose",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "type", Label: "Letter Type", Type: FieldSelect, Options: []Option{
				{Value: "formal", Label: "Formal"},
				{Value: "informal", Label: "Informal"},
				{Value: "business", Label: "Business"},
			}},
			{Name: "recipient", Label: "Recipient", Type: FieldInput, Placeholder: "E.g., Mr. John Smith", Required: true},
			{Name: "purpose", Label: "Purpose of Letter", Type: FieldTextarea, Placeholder: "E.g., Job inquiry, complaint, recommendation...", Required: true},
		},
		Template: `Write a {{.type}} letter to {{.recipient}}.

Purpose: {{.purpose}}

Format the letter with the date, recipient address, greeting, body paragraphs and closing.
Use clear, appropriate language for a {{.type}} letter and proper spacing between sections.`,
	},
	{
		ID:          "debate-writer",
		Title:       "Debate Writer",
		Description: "Create compelling debate speeches on any topic",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "topic", Label: "Motion/Topic", Type: FieldInput, Placeholder: "Enter the debate topic...", Required: true},
			{Name: "level", Label: "Class Level", Type: FieldSelect, Options: []Option{
				{Value: "class-10", Label: "Class 10"},
				{Value: "class-12", Label: "Class 12"},
				{Value: "university", Label: "University"},
			}},
			{Name: "stance", Label: "Stance", Type: FieldSelect, Options: []Option{
				{Value: "for", Label: "For"},
				{Value: "against", Label: "Against"},
				{Value: "neutral", Label: "Both Sides"},
			}},
		},
		Template: `Write a debate speech {{stance .stance}} the motion: "{{.topic}}"

This is for a {{level .level}} level student. Adjust vocabulary and complexity accordingly.

Structure:
1. Opening statement
2. Three main arguments with evidence
3. Counter-arguments and rebuttals
4. Powerful closing statement

Use clear spacing between sections.`,
	},
	{
		ID:          "speech-writer",
		Title:       "Speech Writer",
		Description: "Generate speeches for various occasions",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "occasion", Label: "Occasion", Type: FieldInput, Placeholder: "E.g., Farewell, Independence Day...", Required: true},
			{Name: "duration", Label: "Duration", Type: FieldSelect, Options: []Option{
				{Value: "2", Label: "2 minutes"},
				{Value: "5", Label: "5 minutes"},
				{Value: "10", Label: "10 minutes"},
			}},
			classField(),
		},
		Template: `Write a {{.duration}} minute speech for the occasion: {{.occasion}}

The speaker is a {{level .level}} student.
Open with a respectful greeting to the audience, develop two or three main points, and end with a memorable closing line.
Use clear spacing between sections.`,
	},
	{
		ID:          "summary-generator",
		Title:       "Summary Generator",
		Description: "Summarize long texts into simple explanations",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "text", Label: "Text", Type: FieldTextarea, Placeholder: "Paste the text to summarize...", Required: true},
			{Name: "length", Label: "Summary Length", Type: FieldSelect, Options: []Option{
				{Value: "short", Label: "Short (20%)"},
				{Value: "medium", Label: "Medium (40%)"},
				{Value: "long", Label: "Long (60%)"},
			}},
		},
		Template: `Summarize the following text to approximately {{percent .length}} of the original length.

Text to summarize:
{{.text}}

Provide a clear, concise summary that captures the main points.
Use proper paragraph spacing between sections.`,
	},
	{
		ID:          "grammar-corrector",
		Title:       "Grammar Corrector",
		Description: "Fix grammar, spelling, and improve sentence structure",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "text", Label: "Text", Type: FieldTextarea, Placeholder: "Paste text to correct...", Required: true},
		},
		System: "You are a careful proofreader. Preserve the author's meaning and voice.",
		Template: `Correct the grammar, spelling and punctuation of the following text.

Text:
{{.text}}

First give the corrected text. Then, under the heading Changes Made:, list each correction with a short explanation.`,
	},
	{
		ID:          "paragraph-writer",
		Title:       "Paragraph Writer",
		Description: "Write well-structured paragraphs on any topic",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "topic", Label: "Topic", Type: FieldInput, Required: true},
			classField(),
			{Name: "words", Label: "Length", Type: FieldSelect, Options: []Option{
				{Value: "150", Label: "150 words"},
				{Value: "250", Label: "250 words"},
				{Value: "400", Label: "400 words"},
			}},
		},
		Template: `Write a well-structured paragraph of about {{.words}} words on: {{.topic}}

Write for a {{level .level}} student with a clear topic sentence, supporting details and a concluding sentence.`,
	},
	{
		ID:          "essay-writer",
		Title:       "Essay Writer",
		Description: "Generate comprehensive essays with introduction, body, and conclusion",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "topic", Label: "Essay Topic", Type: FieldTextarea, Placeholder: "Enter your essay topic...", Required: true},
			{Name: "type", Label: "Type", Type: FieldSelect, Options: []Option{
				{Value: "persuasive", Label: "Persuasive"},
				{Value: "informative", Label: "Informative"},
				{Value: "narrative", Label: "Narrative"},
			}},
			{Name: "words", Label: "Length", Type: FieldSelect, Options: []Option{
				{Value: "300", Label: "300 words"},
				{Value: "500", Label: "500 words"},
				{Value: "1000", Label: "1000 words"},
			}},
		},
		Template: `Write a {{.type}} essay about: {{.topic}}

Target word count: {{.words}} words

Format with:
1. Introduction
2. Body paragraphs
3. Conclusion

Use clear, academic language with proper paragraph spacing.`,
	},
	{
		ID:          "composition-writer",
		Title:       "Composition Writer",
		Description: "Write creative compositions in narrative, descriptive, or reflective style",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "topic", Label: "Topic", Type: FieldInput, Required: true},
			{Name: "style", Label: "Style", Type: FieldSelect, Options: []Option{
				{Value: "narrative", Label: "Narrative"},
				{Value: "descriptive", Label: "Descriptive"},
				{Value: "reflective", Label: "Reflective"},
			}},
			classField(),
		},
		Template: `Write a {{.style}} composition on: {{.topic}}

The writer is a {{level .level}} student. Give it a title, vivid details and a thoughtful ending.
Use proper paragraph spacing.`,
	},
	{
		ID:          "story-generator",
		Title:       "Story Generator",
		Description: "Generate creative stories based on topic and class level",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "topic", Label: "Story Topic", Type: FieldInput, Required: true},
			classField(),
		},
		Template: `Write an original story about: {{.topic}}

Suitable for a {{level .level}} student. Give the story a title and end with a clear moral or lesson.`,
	},
	{
		ID:          "ai-humanizer",
		Title:       "AI Humanizer",
		Description: "Make AI-generated text sound more natural and human-written",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "text", Label: "Text", Type: FieldTextarea, Placeholder: "Paste AI-generated text...", Required: true},
			{Name: "tone", Label: "Tone", Type: FieldSelect, Options: []Option{
				{Value: "casual", Label: "Casual"},
				{Value: "professional", Label: "Professional"},
				{Value: "academic", Label: "Academic"},
			}},
		},
		Template: `Rewrite the following text so it sounds natural and human-written in a {{.tone}} tone.
Vary sentence length, avoid stock phrases and keep the original meaning.

Text:
{{.text}}`,
	},
	{
		ID:          "easy-grammar",
		Title:       "Grammar for Students",
		Description: "Learn and understand grammar rules with professional explanations and examples",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "topic", Label: "Grammar Topic", Type: FieldInput, Placeholder: "E.g., Present perfect tense", Required: true},
			classField(),
			languageField(),
		},
		Template: `Explain the grammar topic "{{.topic}}" to a {{level .level}} student, writing in {{.language}}.

Sections:
Definition:
Rules:
Examples:
Common Mistakes:
Practice Exercises:`,
	},
	{
		ID:          "ai-math-solver",
		Title:       "Math Solver",
		Description: "Solve math problems in English or Bangla with detailed step-by-step solutions",
		Category:    CategoryStudent,
		Fields: []Field{
			{Name: "problem", Label: "Math Problem", Type: FieldTextarea, Required: true},
			languageField(),
		},
		System: "You are a patient mathematics teacher. Show every step and check the final answer.",
		Template: `Solve the following math problem step by step, writing the explanation in {{.language}}.

Problem:
{{.problem}}

End with a line starting with Final Answer:`,
	},

	// Writing tools
	{
		ID:          "content-writer",
		Title:       "AI Content Writer",
		Description: "Create content for kids stories, blog posts, Instagram captions and more",
		Category:    CategoryWriter,
		Fields: []Field{
			{Name: "type", Label: "Content Type", Type: FieldSelect, Options: []Option{
				{Value: "article", Label: "Article"},
				{Value: "product description", Label: "Product Description"},
				{Value: "newsletter", Label: "Newsletter"},
			}},
			{Name: "topic", Label: "Topic", Type: FieldTextarea, Required: true},
		},
		Template: `Write a {{.type}} about: {{.topic}}

Make it engaging and well organised with short sections.`,
	},
	{
		ID:          "kids-story",
		Title:       "Kids Story Writer",
		Description: "Write engaging stories for children",
		Category:    CategoryWriter,
		Fields: []Field{
			{Name: "topic", Label: "Story Idea", Type: FieldTextarea, Required: true},
			{Name: "age", Label: "Age Group", Type: FieldSelect, Options: []Option{
				{Value: "3-5", Label: "3-5 years"},
				{Value: "6-8", Label: "6-8 years"},
				{Value: "9-12", Label: "9-12 years"},
			}},
		},
		Template: `Write a children's story for ages {{.age}} about: {{.topic}}

Use simple words, a friendly tone and a gentle lesson at the end. Give the story a title.`,
	},
	{
		ID:          "blog-post",
		Title:       "Blog Post Writer",
		Description: "Create SEO-friendly blog posts on any topic",
		Category:    CategoryWriter,
		Fields: []Field{
			{Name: "topic", Label: "Blog Topic", Type: FieldInput, Required: true},
			{Name: "keywords", Label: "Keywords", Type: FieldInput, Placeholder: "Comma separated"},
			{Name: "words", Label: "Length", Type: FieldSelect, Options: []Option{
				{Value: "600", Label: "600 words"},
				{Value: "1000", Label: "1000 words"},
				{Value: "1500", Label: "1500 words"},
			}},
		},
		Template: `Write an SEO-friendly blog post of about {{.words}} words on: {{.topic}}
{{if .keywords}}
Work these keywords in naturally: {{.keywords}}
{{end}}
Include a title, an introduction, several sections with headings and a conclusion.`,
	},
	{
		ID:          "instagram-caption",
		Title:       "Instagram Caption",
		Description: "Generate catchy Instagram captions with hashtags",
		Category:    CategoryWriter,
		Fields: []Field{
			{Name: "post", Label: "Post Description", Type: FieldTextarea, Required: true},
			{Name: "mood", Label: "Mood", Type: FieldSelect, Options: []Option{
				{Value: "fun", Label: "Fun"},
				{Value: "inspirational", Label: "Inspirational"},
				{Value: "aesthetic", Label: "Aesthetic"},
			}},
		},
		Template: `Write five {{.mood}} Instagram captions for this post: {{.post}}

Number each caption and follow each one with relevant hashtags written as plain words separated by spaces.`,
	},
	{
		ID:          "school-letter",
		Title:       "School Letter Writer",
		Description: "Write professional school letters - requests, complaints, appeals, and more",
		Category:    CategoryWriter,
		Fields: []Field{
			{Name: "type", Label: "Letter Type", Type: FieldSelect, Options: []Option{
				{Value: "request", Label: "Request"},
				{Value: "complaint", Label: "Complaint"},
				{Value: "appeal", Label: "Appeal"},
			}},
			{Name: "recipient", Label: "Recipient", Type: FieldInput, Placeholder: "E.g., The Principal"},
			{Name: "details", Label: "Details", Type: FieldTextarea, Required: true},
		},
		Template: `Write a formal school {{.type}} letter{{if .recipient}} to {{.recipient}}{{end}}.

Details: {{.details}}

Include the date, subject, greeting, body and closing, with proper spacing between sections.`,
	},

	// Image tools
	{
		ID:          "image-generator",
		Title:       "AI Image Generator",
		Description: "Generate stunning images from text descriptions",
		Category:    CategoryImage,
		Kind:        KindImage,
		Fields: []Field{
			{Name: "prompt", Label: "Image Description", Type: FieldTextarea, Placeholder: "Describe the image you want...", Required: true},
		},
		Template: `{{.prompt}}`,
	},

	// Social media tools
	{
		ID:          "youtube-title",
		Title:       "Clickbait Title Generator",
		Description: "Generate engaging YouTube video titles",
		Category:    CategorySocial,
		Fields: []Field{
			{Name: "topic", Label: "Video Topic", Type: FieldInput, Required: true},
		},
		Template: `Generate ten engaging YouTube video titles for a video about: {{.topic}}

Number each title. Keep every title under 70 characters.`,
	},
	{
		ID:          "youtube-script",
		Title:       "Script Writer",
		Description: "Write complete YouTube video scripts",
		Category:    CategorySocial,
		Fields: []Field{
			{Name: "topic", Label: "Video Topic", Type: FieldInput, Required: true},
			{Name: "duration", Label: "Duration", Type: FieldSelect, Options: []Option{
				{Value: "3", Label: "3 minutes"},
				{Value: "5", Label: "5 minutes"},
				{Value: "10", Label: "10 minutes"},
			}},
		},
		Template: `Write a complete {{.duration}} minute YouTube script about: {{.topic}}

Sections:
Hook:
Intro:
Main Content:
Call to Action:
Outro:`,
	},
	{
		ID:          "youtube-description",
		Title:       "SEO Description Generator",
		Description: "Create SEO-friendly YouTube descriptions",
		Category:    CategorySocial,
		Fields: []Field{
			{Name: "title", Label: "Video Title", Type: FieldInput, Required: true},
			{Name: "summary", Label: "What the video covers", Type: FieldTextarea},
		},
		Template: `Write an SEO-friendly YouTube description for the video "{{.title}}".
{{if .summary}}
The video covers: {{.summary}}
{{end}}
Start with a two sentence overview, then key points, then a call to subscribe.`,
	},
	{
		ID:          "youtube-tags",
		Title:       "Tag Generator",
		Description: "Generate relevant tags for YouTube videos",
		Category:    CategorySocial,
		Fields: []Field{
			{Name: "topic", Label: "Video Topic", Type: FieldInput, Required: true},
		},
		Template: `Generate 25 relevant YouTube tags for a video about: {{.topic}}

Return the tags as a single comma separated line.`,
	},

	// Utility tools
	{
		ID:          "translator",
		Title:       "Language Translator",
		Description: "Translate text accurately between 50+ languages with natural phrasing",
		Category:    CategoryUtility,
		Fields: []Field{
			{Name: "text", Label: "Text to Translate", Type: FieldTextarea, Placeholder: "Type or paste the text you want to translate...", Required: true},
			{Name: "from", Label: "From Language", Type: FieldSelect, Options: plainOptions(append([]string{"Auto Detect"}, translationLanguages...)...)},
			{Name: "to", Label: "To Language", Type: FieldSelect, Options: plainOptions(append([]string{"Spanish", "English"}, translationLanguages[2:]...)...)},
		},
		System: "You are an expert multilingual translator. Provide accurate, natural-sounding translations. Preserve tone, meaning, and nuance. Return only the translated text.",
		Template: `From: {{.from}}
To: {{.to}}
Text: {{.text}}

Translate the above. Return only the translation.`,
	},
	{
		ID:          "paraphraser",
		Title:       "Paraphraser",
		Description: "Rewrite and paraphrase text to avoid plagiarism while keeping the meaning",
		Category:    CategoryUtility,
		Fields: []Field{
			{Name: "text", Label: "Original Text", Type: FieldTextarea, Placeholder: "Paste the text you want to paraphrase here...", Required: true},
			{Name: "mode", Label: "Paraphrase Mode", Type: FieldSelect, Options: plainOptions(
				"Standard", "Fluency (Improve flow)", "Formal", "Simple (Easy to read)", "Creative", "Academic",
			)},
		},
		System: "You are an expert writing assistant. Paraphrase text completely: change sentence structure, vocabulary, and phrasing while keeping the original meaning. The result should not match the original wording.",
		Template: `Mode: {{.mode}}
Original:
{{.text}}

Paraphrase this text using the {{.mode}} mode. Return only the paraphrased version.`,
	},
	{
		ID:          "citation-generator",
		Title:       "Citation Generator",
		Description: "Generate properly formatted citations and references for any source",
		Category:    CategoryUtility,
		Fields: []Field{
			{Name: "source", Label: "Source Information", Type: FieldTextarea, Placeholder: "Title: The Great Gatsby\nAuthor: F. Scott Fitzgerald\nYear: 1925\nPublisher: Scribner", Required: true},
			{Name: "type", Label: "Source Type", Type: FieldSelect, Options: plainOptions(
				"Book", "Journal Article", "Website", "Newspaper", "Video/YouTube", "Podcast", "Research Paper",
			)},
			{Name: "style", Label: "Citation Style", Type: FieldSelect, Options: plainOptions(
				"APA (7th Edition)", "MLA (9th Edition)", "Chicago", "Harvard", "IEEE",
			)},
		},
		System: "You are an expert academic citation specialist. Generate perfectly formatted citations following the exact rules of the specified citation style. Always include all required elements.",
		Template: `Source Type: {{.type}}
Citation Style: {{.style}}
Source Info:
{{.source}}

Generate a properly formatted {{.style}} citation for this source.`,
	},
	{
		ID:          "text-to-music",
		Title:       "Text to Music",
		Description: "Generate stunning music from text descriptions",
		Category:    CategoryUtility,
		Kind:        KindMusic,
		Fields: []Field{
			{Name: "prompt", Label: "Music Description", Type: FieldTextarea, Required: true},
		},
		Template: `{{.prompt}}`,
	},
}

// Default returns the built-in catalog. It panics if the built-in definitions are invalid.
func Default() *Catalog {
	c, err := NewCatalog(Definitions...)
	if err != nil {
		panic(err)
	}
	return c
}
