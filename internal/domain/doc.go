// Package domain models observations from remote hydrological monitoring
// stations in the upper Alaknanda basin.
//
// # Data Sources
//
// Two families of field equipment write delimited text files to per-station
// backup directories, one file per logger dump. Files use commas and tabs
// interchangeably as delimiters, sometimes within a single line.
//
// Automated Weather Stations (AWS) write a header row whose first column is
// "Date Time", followed by data rows. Header spellings drift between firmware
// revisions ("Temp", "TEMPERATURE", "Total Amount of Precipitation" vs.
// "Current Precipitation"), so columns are resolved by case-insensitive
// substring match against candidate names rather than exact labels.
//
// Early Warning System (EWS) gauge stations write headerless files where every
// line is a data row. Two firmware variants are deployed:
//
//   - Index/flag/value encoding: a parameter appears as three consecutive
//     tokens "<index> B <value>". Index 7 is the radar discharge channel.
//     Auxiliary electrical readings sit at fixed absolute offsets.
//   - Fixed-column encoding: each parameter lives at a fixed column position.
//
// # Timestamps
//
// AWS loggers emit a nonstandard "DD/MM/YY/MM/YYYY/ HH:MM:SS" timestamp that
// repeats the month. Unparseable timestamps fall back to ingestion wall-clock
// time; an observation never carries a zero timestamp. EWS rows carry no
// usable timestamp at all and are stamped at ingestion time.
//
// # Missing values
//
// Numeric fields are *float64. nil means "not present in this row and no
// substitute available" and maps to SQL NULL; 0 is a real reading. Which of
// the two a dropped sensor produces is a per-station policy, held in the
// station registry and applied by the parsers.
package domain
