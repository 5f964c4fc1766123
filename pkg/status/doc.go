/*
Package status tracks what happened to every entry during a run.

🎯 Purpose:
- Records renames, rewrites, skips and failures per entry
- Counts them into a Summary for the end of the run
- Formats outcomes for the debug log and the summary table

🔄 Flow:
1. The operation reports each entry outcome to a Tracker
2. The Tracker logs a formatted line at debug level
3. The command renders the Summary and lists failures
*/
package status
