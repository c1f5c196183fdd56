/*
Package analysis derives insight from published lottery result documents.

The analyzer groups files by publication year (read from the source URL,
falling back to download time) and computes:

  - estimated per-year success rates, using the historical ratio of
    unsuccessful applicants to winners
  - waiting queue projections, dividing the queue length by the year's
    published quota
  - year-over-year trends across the two most recent years
  - plain-language recommendations

All numbers are estimates derived from what the announcement site publishes;
the total applicant pool is never published directly.
*/
package analysis
