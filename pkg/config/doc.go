/*
Package config manages configuration loading and validation for superreplace.

	            +-------------+
	            |   Config    |
	            | (Defaults)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Provides the built-in exclusion and extension defaults
- Loads an optional config file and merges it over the defaults
- Holds the per-run switches parsed from the command line

🔄 Flow:
1. Picks a parser by file extension
2. Decodes the file, rejecting unknown keys
3. Merges the result over Default()
4. Validates globs, extensions and sizes
*/
package config
