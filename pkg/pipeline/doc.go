// Package pipeline orders the files of a route directory by the execution order of the
// request-handling pipeline declared in the route's handler file.
//
// A handler file declares its pipeline with a composition call such as
//
//	pipe(
//		start(extractParams(request)),
//		bypass(matchId),
//		bypass(getUser),
//	)
//
// Extract scans the text for that one idiom and returns the stage names in the order they run.
// Order then ranks the entries of a directory by the position of their stem in that sequence, so
// that the listing follows execution order. Files that implement no stage are placed last, in the
// order they were listed.
//
// Neither function touches the file system. The Runner wires them to a billy.Filesystem, processes
// many (handler file, directory) units concurrently and reports a Summary. A unit whose handler file
// or directory cannot be read is reported as failed while the other units carry on.
//
// The ordering is informational: nothing is renamed on disk.
package pipeline
