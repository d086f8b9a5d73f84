// Package resumatch embeds the resume/job matcher in a Go program without running the HTTP API.
//
// A Client serves one TF-IDF model. It is loaded from a model file written by
// `resumatch train`, or trained in-process on a corpus when no file exists yet.
//
//	client, _ := resumatch.New(ctx,
//	    resumatch.WithModelFile("models/vectorizer.bin", "models/metadata.json"),
//	    resumatch.WithWorkers(8),
//	)
//	m, _ := client.Match(ctx, resumeText, jobText)
//	top, _ := client.MatchToJobs(ctx, resumeText, jobs, 5)
//
// Operations are safe for concurrent use; Retrain swaps the model without blocking readers.
package resumatch
