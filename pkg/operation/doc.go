/*
Package operation walks path arguments and applies a replacement to every
entry name and text file below them.

	+-------------+
	|  Operation  |
	|   (Walk)    |
	+------+------+
	       |
	+------+------+
	|   Entry     |
	| content→name|
	+------+------+

🎯 Purpose:
- Visits every entry below a path, children before their directory
- Rewrites text file content, keeping its encoding
- Renames entries whose names contain the old text

🔄 Flow:
1. Lstat the path argument, so symlinks are never followed
2. Walk depth first, skipping excluded subtrees
3. For a text file, decode, replace, encode and write in place
4. Rename the entry inside its parent directory
5. Report every outcome to the status tracker and the console

⚡ Error Handling:
- A missing path argument returns ErrPathNotFound
- An I/O error stops the current path argument
- A refused rename or an unencodable file is reported and the walk goes on

🔍 Example:

	op := operation.NewReplaceOperation(opts, "./project")
	err := operation.NewRunner(logger, tracker).RunAll(ctx, []operation.Operation{op})
*/
package operation
