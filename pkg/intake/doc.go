// Package intake turns a free-text task description into a suggested task
// draft: a short title and a priority of Low, Med, or High.
//
// Quick start:
//
//	in, err := intake.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	d, _ := in.Classify("Fix the urgent login bug ASAP")
//	fmt.Println(d.Title, d.Priority) // Fix the login bug High
//
// Classification is a deterministic rule engine over a cue lexicon; no model
// or network is involved. An Intake is immutable and safe for concurrent use.
// Create once, reuse across requests.
package intake
