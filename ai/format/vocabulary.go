package format

// HeadingKeywords are line prefixes that mark a structural section heading.
// Matching is case-insensitive and requires a word boundary after the keyword.
var HeadingKeywords = []string{
	"Introduction", "Conclusion", "Body", "Opening", "Closing", "Dear", "Subject", "Date",
	"To", "From", "Paragraph", "Para", "Section", "Part", "Chapter", "Arguments", "Counter",
	"Rebuttal", "Hook", "Intro", "Main Content", "Call to Action", "Outro", "Summary",
	"Abstract", "Overview", "Background", "Details", "Examples", "Analysis", "Discussion",
	"Results", "Findings", "Key Points", "Important Notes", "Benefits", "Advantages",
	"Disadvantages", "Challenges", "Solutions", "Methods", "Approaches", "Strategies", "Tips",
	"Best Practices", "Recommendations", "Final Thoughts", "Next Steps",
}

// EmphasisWords are transition and emphasis phrases wrapped in an Emphasis span.
// A match needs a word boundary on both sides, so "First" never matches inside
// "Firstly" and plain prefixes may appear in any order. A phrase that extends
// another across a space ("Key Point" and "Key") must come first, since the
// earliest alternative that matches wins.
var EmphasisWords = []string{
	"Important", "Key Point", "Key", "Note", "Conclusion", "Summary", "Introduction",
	"Therefore", "However", "Moreover", "Furthermore", "In conclusion", "To summarize",
	"In summary", "First", "Second", "Third", "Finally", "Firstly", "Secondly", "Thirdly",
	"Lastly", "Main Point", "Main", "For example", "For instance", "On the other hand",
	"In addition", "As a result", "Consequently", "Meanwhile", "Nevertheless", "Regardless",
	"Significantly", "Notably", "Essentially", "Fundamentally", "Critically", "Respectfully",
	"Sincerely", "Regards", "Faithfully", "Yours truly", "Thank you", "Dear Sir", "Dear Madam",
	"Dear Teacher", "To Whom", "Subject", "Reference", "Opening Statement",
	"Closing Statement", "Ladies and Gentlemen", "Honourable", "Distinguished", "Respected",
	"Evidence", "Example", "Result", "Moral", "Lesson", "Thus", "Hence", "Also",
	"Additionally", "Similarly", "Likewise", "Besides", "Indeed", "Certainly", "Obviously",
	"Clearly", "Undoubtedly", "Definitely", "Absolutely", "Positively", "Success",
	"Successful", "Benefit", "Benefits", "Advantage", "Advantages", "Importantly", "Basically",
}
