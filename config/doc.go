/*
Package config loads the settings of a rest service from a YAML or TOML file,
the environment, and .env files.

A YAML file looks like:

	env: PRODUCTION
	server:
	  addr: ":8080"
	  read_timeout: 5s
	versioning:
	  strategies:
	    - type: header
	      key: X-Accept-Version
	formats:
	  - name: csv
	    media_types: [text/csv]
	rules:
	  - path: ^/api
	    priorities: [json, xml]
	    fallback: json
	  - stop: true
	exception:
	  classes:
	    ReportMissing: NotFound
	  codes:
	    ReportMissing: 404
	    InvalidArgument: 400
	  messages:
	    ReportMissing: true

The order of the exception tables is kept, since the first matching entry wins.
In TOML, whose tables are unordered, exception tables are written as arrays of tables:

	[[exception.codes]]
	class = "ReportMissing"
	value = 404
*/
package config
